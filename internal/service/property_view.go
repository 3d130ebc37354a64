package service

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"estatesite/internal/models"
	"estatesite/internal/validation"
)

const PriceOnRequest = "Price on request"

// PropertyView is the public shape of a listing. Price, Bedrooms, Bathrooms
// and Area are nil when stored as null, zero or empty; the site shows
// "unknown" for them.
type PropertyView struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Location    string                   `json:"location"`
	Price       *float64                 `json:"price,omitempty"`
	PriceLabel  string                   `json:"priceLabel"`
	Currency    string                   `json:"currency"`
	Bedrooms    *int                     `json:"bedrooms,omitempty"`
	Bathrooms   *int                     `json:"bathrooms,omitempty"`
	Area        *string                  `json:"area,omitempty"`
	Category    *string                  `json:"category,omitempty"`
	Description *string                  `json:"description,omitempty"`
	Image       string                   `json:"image"`
	Gallery     []string                 `json:"gallery"`
	Features    []models.PropertyFeature `json:"features,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
}

func NewPropertyView(p *models.Property) PropertyView {
	cur := p.Currency
	if cur == "" {
		cur = validation.DefaultCurrency
	}
	v := PropertyView{
		ID:          p.ID,
		Title:       p.Title,
		Location:    p.Location,
		PriceLabel:  PriceOnRequest,
		Currency:    cur,
		Bedrooms:    positiveInt(p.Bedrooms),
		Bathrooms:   positiveInt(p.Bathrooms),
		Area:        nonEmpty(p.Area),
		Category:    nonEmpty(p.Category),
		Description: nonEmpty(p.Description),
		Image:       p.ThumbnailURL,
		Gallery:     []string(p.GalleryURLs),
		CreatedAt:   p.CreatedAt,
	}
	if v.Gallery == nil {
		v.Gallery = []string{}
	}
	if len(p.Features) > 0 {
		v.Features = []models.PropertyFeature(p.Features)
	}
	if p.Price != nil && *p.Price > 0 {
		price := *p.Price
		v.Price = &price
		v.PriceLabel = FormatPrice(price, cur)
	}
	return v
}

func NewPropertyViews(list []models.Property) []PropertyView {
	out := make([]PropertyView, len(list))
	for i := range list {
		out[i] = NewPropertyView(&list[i])
	}
	return out
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"AED": "AED ",
	"CAD": "CA$",
	"AUD": "A$",
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders whole currency units with grouping, e.g. "$500,000".
func FormatPrice(value float64, cur string) string {
	cur = strings.ToUpper(cur)
	symbol, ok := currencySymbols[cur]
	if !ok {
		symbol = cur + " "
	}
	return symbol + pricePrinter.Sprintf("%d", int64(math.Round(value)))
}

func positiveInt(n *int) *int {
	if n == nil || *n <= 0 {
		return nil
	}
	v := *n
	return &v
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
