package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainErrors "github.com/yuzvak/herbal-storefront/internal/domain/errors"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domainErrors.ErrEmptyCart, http.StatusBadRequest},
		{domainErrors.ErrInvalidQuantity, http.StatusBadRequest},
		{domainErrors.ErrStorefrontNotFound, http.StatusNotFound},
		{domainErrors.ErrProductNotFound, http.StatusNotFound},
		{domainErrors.ErrQuickOrderDisabled, http.StatusNotFound},
		{domainErrors.ErrContactUnavailable, http.StatusNotFound},
		{domainErrors.ErrCheckoutInProgress, http.StatusTooManyRequests},
		{fmt.Errorf("%w: dial tcp: refused", domainErrors.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, _ := MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}

func TestMapValidationError(t *testing.T) {
	status, resp := MapDomainError(domainErrors.NewValidationError(map[string]string{
		"phone": "Phone must contain at least 10 digits",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, StatusValidationError, resp.Code)
	assert.Equal(t, MessageInvalidForm, resp.Toast)
	assert.Contains(t, resp.Errors, "phone")
}

func TestInternalErrorsDoNotLeakDetails(t *testing.T) {
	_, resp := MapDomainError(errors.New("pq: password authentication failed"))
	assert.Empty(t, resp.Error)
}
