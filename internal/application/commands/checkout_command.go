package commands

import (
	"context"

	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/domain/order"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

type CheckoutCommand struct {
	Storefront string
	SessionID  string
	Name       string
	Phone      string
	Address    string
}

type CheckoutResponse struct {
	Reference string  `json:"reference"`
	Channel   string  `json:"channel"`
	URL       string  `json:"url"`
	Message   string  `json:"message"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

type CheckoutHandler struct {
	checkoutUseCase *use_cases.CheckoutUseCase
	log             *logger.Logger
}

func NewCheckoutHandler(
	checkoutUseCase *use_cases.CheckoutUseCase,
	log *logger.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
		log:             log,
	}
}

func (h *CheckoutHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*CheckoutResponse, error) {
	h.log.Debug("Processing checkout request", "storefront", cmd.Storefront)

	result, err := h.checkoutUseCase.Checkout(ctx, use_cases.CheckoutInput{
		Storefront: cmd.Storefront,
		SessionID:  cmd.SessionID,
		Customer: &order.CustomerDetails{
			Name:    cmd.Name,
			Phone:   cmd.Phone,
			Address: cmd.Address,
		},
	})
	if err != nil {
		return nil, err
	}

	return toResponse(result), nil
}

func toResponse(result *use_cases.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		Reference: result.Reference,
		Channel:   result.Channel,
		URL:       result.URL,
		Message:   result.Message,
		ItemCount: result.ItemCount,
		Total:     result.Total,
	}
}
