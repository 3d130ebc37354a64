package domain

// RoleAdmin is the only role; every admin user carries it.
const RoleAdmin = "ADMIN"

// Multipart field names used by the property forms.
const (
	FormFieldImages        = "images"
	FormFieldRemovedImages = "removed_images"
)
