package errors

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrStorefrontNotFound = errors.New("storefront not found")

	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")

	ErrQuickOrderDisabled = errors.New("quick order is not available for this storefront")
	ErrContactUnavailable = errors.New("contact channel is not configured")

	ErrStoreUnavailable = errors.New("cart store unavailable")
)

// ValidationError carries per-field messages for a rejected customer form.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
