package handlers

import (
	"net/http"

	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/response"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

// ContactHandler redirects to tel: and mailto: links in the same context.
type ContactHandler struct {
	checkout *use_cases.CheckoutUseCase
	log      *logger.Logger
}

func NewContactHandler(checkout *use_cases.CheckoutUseCase, log *logger.Logger) *ContactHandler {
	return &ContactHandler{checkout: checkout, log: log}
}

func (h *ContactHandler) HandleCall(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, use_cases.ChannelCall)
}

func (h *ContactHandler) HandleEmail(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, use_cases.ChannelEmail)
}

func (h *ContactHandler) redirect(w http.ResponseWriter, r *http.Request, channel string) {
	variant := session(r).Storefront

	uri, err := h.checkout.ContactURI(variant, channel)
	if err != nil {
		h.log.Warn("Contact link unavailable", "storefront", variant, "channel", channel, "error", err)
		response.WriteDomainError(w, err)
		return
	}

	w.Header().Set("Location", uri)
	w.WriteHeader(http.StatusSeeOther)
}
