package handlers

import (
	"net/http"

	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/response"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
	"github.com/yuzvak/herbal-storefront/internal/presentation/view"
)

type CartHandler struct {
	controller *view.Controller
	toasts     *view.ToastBoard
	log        *logger.Logger
}

func NewCartHandler(controller *view.Controller, toasts *view.ToastBoard, log *logger.Logger) *CartHandler {
	return &CartHandler{
		controller: controller,
		toasts:     toasts,
		log:        log,
	}
}

type addItemRequest struct {
	ID       int64 `json:"id"`
	Quantity *int  `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	rec := view.NewRecorder(h.toasts, s.ID)

	if err := h.controller.Show(r.Context(), s, rec); err != nil {
		writeFailure(w, err, rec)
		return
	}

	response.WriteSuccess(w, rec.Frame())
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		response.WriteValidationError(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}
	if req.ID <= 0 {
		response.WriteValidationError(w, "Validation failed", map[string]string{"id": "id is required"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	s := session(r)
	rec := view.NewRecorder(h.toasts, s.ID)

	if err := h.controller.OnAdd(r.Context(), s, rec, req.ID, quantity); err != nil {
		h.log.Warn("Add to cart failed", "storefront", s.Storefront, "product_id", req.ID, "error", err)
		writeFailure(w, err, rec)
		return
	}

	response.WriteSuccess(w, rec.Frame())
}

func (h *CartHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		response.WriteValidationError(w, "Validation failed", map[string]string{"id": "id must be a positive integer"})
		return
	}

	var req updateItemRequest
	if err := decodeBody(r, &req); err != nil {
		response.WriteValidationError(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}
	if req.Quantity == nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{"quantity": "quantity is required"})
		return
	}

	s := session(r)
	rec := view.NewRecorder(h.toasts, s.ID)

	if err := h.controller.OnQuantityChange(r.Context(), s, rec, id, *req.Quantity); err != nil {
		writeFailure(w, err, rec)
		return
	}

	response.WriteSuccess(w, rec.Frame())
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		response.WriteValidationError(w, "Validation failed", map[string]string{"id": "id must be a positive integer"})
		return
	}

	s := session(r)
	rec := view.NewRecorder(h.toasts, s.ID)

	if err := h.controller.OnRemove(r.Context(), s, rec, id); err != nil {
		writeFailure(w, err, rec)
		return
	}

	response.WriteSuccess(w, rec.Frame())
}
