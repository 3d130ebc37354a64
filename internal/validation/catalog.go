package validation

// ServiceInput creates a service.
type ServiceInput struct {
	Slug         string  `json:"slug" form:"slug" validate:"required,max=120"`
	Name         string  `json:"name" form:"name" validate:"required"`
	Title        string  `json:"title" form:"title" validate:"required"`
	Description  string  `json:"description" form:"description" validate:"min=10"`
	Image        *string `json:"image" form:"image"`
	DisplayOrder int     `json:"display_order" form:"display_order" validate:"gte=0"`
	IsActive     *bool   `json:"is_active" form:"is_active"`
}

// ServicePatch updates a service; nil fields stay as stored.
type ServicePatch struct {
	Slug         *string `json:"slug" form:"slug" validate:"omitempty,min=1,max=120"`
	Name         *string `json:"name" form:"name" validate:"omitempty,min=1"`
	Title        *string `json:"title" form:"title" validate:"omitempty,min=1"`
	Description  *string `json:"description" form:"description" validate:"omitempty,min=10"`
	Image        *string `json:"image" form:"image"`
	DisplayOrder *int    `json:"display_order" form:"display_order" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active" form:"is_active"`
}

// CompanyInfoInput replaces the company metadata. Blank optional fields
// clear the stored value; a blank name keeps the stored one.
type CompanyInfoInput struct {
	Name             *string `json:"name" form:"name" validate:"omitempty,min=1"`
	Tagline          *string `json:"tagline" form:"tagline"`
	Phone            *string `json:"phone" form:"phone"`
	Email            *string `json:"email" form:"email" validate:"omitempty,email"`
	CalendlyLink     *string `json:"calendly_link" form:"calendlyLink" validate:"omitempty,url"`
	Founded          *string `json:"founded" form:"founded"`
	Locations        *string `json:"locations" form:"locations"`
	Vision           *string `json:"vision" form:"vision"`
	Mission          *string `json:"mission" form:"mission"`
	Purpose          *string `json:"purpose" form:"purpose"`
	DesignPhilosophy *string `json:"design_philosophy" form:"designPhilosophy"`
}

type ContactInput struct {
	Type         string  `json:"type" form:"type" validate:"required"`
	Label        *string `json:"label" form:"label"`
	Value        string  `json:"value" form:"value" validate:"required"`
	DisplayOrder int     `json:"display_order" form:"display_order" validate:"gte=0"`
	IsPrimary    bool    `json:"is_primary" form:"is_primary"`
	IsActive     *bool   `json:"is_active" form:"is_active"`
}

type ContactPatch struct {
	Type         *string `json:"type" form:"type" validate:"omitempty,min=1"`
	Label        *string `json:"label" form:"label"`
	Value        *string `json:"value" form:"value" validate:"omitempty,min=1"`
	DisplayOrder *int    `json:"display_order" form:"display_order" validate:"omitempty,gte=0"`
	IsPrimary    *bool   `json:"is_primary" form:"is_primary"`
	IsActive     *bool   `json:"is_active" form:"is_active"`
}
