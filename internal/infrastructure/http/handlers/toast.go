package handlers

import (
	"net/http"

	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/response"
	"github.com/yuzvak/herbal-storefront/internal/presentation/view"
)

type ToastHandler struct {
	carts  *use_cases.CartService
	toasts *view.ToastBoard
}

func NewToastHandler(carts *use_cases.CartService, toasts *view.ToastBoard) *ToastHandler {
	return &ToastHandler{carts: carts, toasts: toasts}
}

// HandleListToasts returns the session's toasts that have not been dismissed yet.
func (h *ToastHandler) HandleListToasts(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	if _, err := h.carts.Storefront(s.Storefront); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, h.toasts.Active(s.ID))
}
