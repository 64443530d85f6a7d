package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/yuzvak/herbal-storefront/internal/domain/errors"
)

const MessageInvalidForm = "Please fill all required fields correctly!"

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

// Ordered so that the first match wins.
var errorMappings = []struct {
	err     error
	mapping ErrorMapping
}{
	{domainErrors.ErrStorefrontNotFound, ErrorMapping{
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Storefront not found",
	}},
	{domainErrors.ErrProductNotFound, ErrorMapping{
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product not found",
	}},
	{domainErrors.ErrInvalidQuantity, ErrorMapping{
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Quantity must be at least 1",
	}},
	{domainErrors.ErrEmptyCart, ErrorMapping{
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Your cart is empty!",
	}},
	{domainErrors.ErrCheckoutInProgress, ErrorMapping{
		HTTPStatus: http.StatusTooManyRequests,
		Status:     StatusTooManyRequests,
		Message:    "Order is already being placed",
	}},
	{domainErrors.ErrQuickOrderDisabled, ErrorMapping{
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Quick order is not available",
	}},
	{domainErrors.ErrContactUnavailable, ErrorMapping{
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Contact channel is not available",
	}},
	{domainErrors.ErrStoreUnavailable, ErrorMapping{
		HTTPStatus: http.StatusServiceUnavailable,
		Status:     StatusServiceUnavailable,
		Message:    "Cart is temporarily unavailable",
	}},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	if ve, ok := domainErrors.AsValidationError(err); ok {
		resp := ValidationError(MessageInvalidForm, ve.Fields)
		resp.Toast = MessageInvalidForm
		return http.StatusUnprocessableEntity, resp
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.mapping.HTTPStatus, Error(m.mapping.Status, m.mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error")
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
