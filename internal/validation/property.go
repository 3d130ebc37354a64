package validation

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/currency"

	"estatesite/internal/models"
)

// Mode selects the price rule: create requires it, update lets a blank
// price mean "leave unchanged".
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

const DefaultCurrency = "USD"

// PropertyInput is a validated create/update payload. Price is nil only in
// ModeUpdate when the caller left it blank; Currency is empty in the same
// case. Features is nil when the field was not sent.
type PropertyInput struct {
	Title       string         `form:"title" validate:"min=3"`
	Location    string         `form:"location" validate:"min=3"`
	Price       *float64       `form:"price" validate:"omitempty,gt=0"`
	Currency    string         `form:"currency"`
	Bedrooms    int            `form:"bedrooms" validate:"gte=0"`
	Bathrooms   int            `form:"bathrooms" validate:"gte=0"`
	Area        string         `form:"area" validate:"min=2"`
	Category    *string        `form:"category"`
	Description string         `form:"description" validate:"min=10"`
	Features    []FeatureInput `form:"features" validate:"omitempty,dive"`
}

type FeatureInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"omitempty,oneof=home lock leaf star"`
}

// ModelFeatures converts the parsed features for storage.
func (in *PropertyInput) ModelFeatures() []models.PropertyFeature {
	if in.Features == nil {
		return nil
	}
	out := make([]models.PropertyFeature, len(in.Features))
	for i, f := range in.Features {
		out[i] = models.PropertyFeature{Title: f.Title, Description: f.Description, Icon: f.Icon}
	}
	return out
}

// ParsePropertyForm coerces the raw form fields and validates them. All
// problems are reported together.
func ParsePropertyForm(form url.Values, mode Mode) (*PropertyInput, error) {
	var errs Errors
	in := &PropertyInput{
		Title:       field(form, "title"),
		Location:    field(form, "location"),
		Area:        field(form, "area"),
		Description: field(form, "description"),
	}
	if c := field(form, "category"); c != "" {
		in.Category = &c
	}

	rawPrice := field(form, "price")
	switch {
	case rawPrice == "" && mode == ModeUpdate:
	case rawPrice == "":
		errs.add("price", "price must be a positive number")
	default:
		p, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
			errs.add("price", "price must be a positive number")
		} else {
			in.Price = &p
		}
	}

	in.Bedrooms = parseCount(&errs, form, "bedrooms")
	in.Bathrooms = parseCount(&errs, form, "bathrooms")

	if raw := field(form, "currency"); raw != "" {
		unit, err := currency.ParseISO(strings.ToUpper(raw))
		if err != nil {
			errs.add("currency", "currency must be a valid ISO 4217 code")
		} else {
			in.Currency = unit.String()
		}
	} else if mode == ModeCreate {
		in.Currency = DefaultCurrency
	}

	if raw := field(form, "features"); raw != "" {
		var features []FeatureInput
		if err := json.Unmarshal([]byte(raw), &features); err != nil {
			errs.add("features", "features must be a JSON array of {title, description, icon}")
		} else {
			in.Features = features
			if in.Features == nil {
				in.Features = []FeatureInput{}
			}
		}
	}

	collect(&errs, validate.Struct(in))
	if len(errs) > 0 {
		return nil, errs
	}
	return in, nil
}

// ParseRemovedImages decodes the JSON array of gallery URLs the caller wants
// dropped. Blank means none.
func ParseRemovedImages(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return nil, Errors{{Field: "removed_images", Message: "removed_images must be a JSON array of image URLs"}}
	}
	return urls, nil
}

func field(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// parseCount accepts blank as zero. A value that is not a whole number is
// reported, a negative one is left for the gte tag.
func parseCount(errs *Errors, form url.Values, key string) int {
	raw := field(form, key)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		errs.add(key, "%s must be a non-negative integer", key)
		return 0
	}
	return int(f)
}
