package order

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"

	domainErrors "github.com/yuzvak/herbal-storefront/internal/domain/errors"
)

const (
	MinPhoneDigits = 10

	DefaultCustomerName    = "Customer"
	DefaultCustomerAddress = "Address will be provided"
)

var strictPolicy = bluemonday.StrictPolicy()

type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// IsBlank reports whether no field carries any non-space text.
func (d CustomerDetails) IsBlank() bool {
	return strings.TrimSpace(d.Name) == "" &&
		strings.TrimSpace(d.Phone) == "" &&
		strings.TrimSpace(d.Address) == ""
}

// Validate checks the sanitized details and returns a *errors.ValidationError
// keyed by field name, or nil. Markup-only input counts as blank.
func (d CustomerDetails) Validate() error {
	d = d.Sanitized()
	fields := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		fields["name"] = "Name is required"
	}

	if len(Digits(d.Phone)) < MinPhoneDigits {
		fields["phone"] = "Phone must contain at least 10 digits"
	}

	if strings.TrimSpace(d.Address) == "" {
		fields["address"] = "Address is required"
	}

	if len(fields) > 0 {
		return domainErrors.NewValidationError(fields)
	}
	return nil
}

// Sanitized strips markup and surrounding space from every field.
func (d CustomerDetails) Sanitized() CustomerDetails {
	return CustomerDetails{
		Name:    sanitizeText(d.Name),
		Phone:   sanitizeText(d.Phone),
		Address: sanitizeText(d.Address),
	}
}

// WithDefaults substitutes placeholders for empty name and address.
func (d CustomerDetails) WithDefaults() CustomerDetails {
	if d.Name == "" {
		d.Name = DefaultCustomerName
	}
	if d.Address == "" {
		d.Address = DefaultCustomerAddress
	}
	return d
}

func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders the digits of raw as "xxxxx xxxxx", keeping at most ten.
func FormatPhone(raw string) string {
	digits := Digits(raw)
	switch {
	case len(digits) <= 5:
		return digits
	case len(digits) > 10:
		digits = digits[:10]
	}
	return digits[:5] + " " + digits[5:]
}
