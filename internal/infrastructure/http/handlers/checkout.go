package handlers

import (
	"net/http"
	"strconv"

	"github.com/yuzvak/herbal-storefront/internal/application/commands"
	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/domain/order"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/response"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
	"github.com/yuzvak/herbal-storefront/internal/presentation/view"
)

type CheckoutHandler struct {
	controller *view.Controller
	checkout   *use_cases.CheckoutUseCase
	toasts     *view.ToastBoard
	log        *logger.Logger
}

func NewCheckoutHandler(
	controller *view.Controller,
	checkout *use_cases.CheckoutUseCase,
	toasts *view.ToastBoard,
	log *logger.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		controller: controller,
		checkout:   checkout,
		toasts:     toasts,
		log:        log,
	}
}

type orderResult struct {
	Order *commands.CheckoutResponse `json:"order"`
	view.Frame
}

type quickOrderRequest struct {
	Quantity int `json:"quantity"`
	customerPayload
}

type formValidationResult struct {
	Valid          bool   `json:"valid"`
	FormattedPhone string `json:"formatted_phone"`
}

func (h *CheckoutHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req customerPayload
	if err := decodeBody(r, &req); err != nil {
		response.WriteValidationError(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}

	s := session(r)
	rec := view.NewRecorder(h.toasts, s.ID)

	h.log.Info("Checkout request received", "storefront", s.Storefront)

	resp, err := h.controller.OnCheckout(r.Context(), s, rec, order.CustomerDetails(req))
	if err != nil {
		writeFailure(w, err, rec)
		return
	}

	response.WriteSuccess(w, orderResult{Order: resp, Frame: rec.Frame()}, view.MsgOrderPlaced)
}

func (h *CheckoutHandler) HandleQuickOrder(w http.ResponseWriter, r *http.Request) {
	var req quickOrderRequest
	if err := decodeBody(r, &req); err != nil {
		response.WriteValidationError(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}

	s := session(r)
	rec := view.NewRecorder(h.toasts, s.ID)

	h.log.Info("Quick order request received", "storefront", s.Storefront, "quantity", req.Quantity)

	resp, err := h.controller.OnQuickOrder(r.Context(), s, rec, req.Quantity, order.CustomerDetails(req.customerPayload))
	if err != nil {
		writeFailure(w, err, rec)
		return
	}

	response.WriteSuccess(w, orderResult{Order: resp, Frame: rec.Frame()}, view.MsgOpeningMessaging)
}

// HandleQuote clamps the requested quantity and prices it. A missing or
// malformed quantity quotes the minimum.
func (h *CheckoutHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		quantity = 0
	}

	quote, err := h.checkout.Quote(r.Context(), session(r).Storefront, quantity)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, quote)
}

func (h *CheckoutHandler) HandleValidateForm(w http.ResponseWriter, r *http.Request) {
	var req customerPayload
	if err := decodeBody(r, &req); err != nil {
		response.WriteValidationError(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}

	details := order.CustomerDetails(req)
	if err := details.Validate(); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, formValidationResult{
		Valid:          true,
		FormattedPhone: order.FormatPhone(details.Phone),
	})
}
