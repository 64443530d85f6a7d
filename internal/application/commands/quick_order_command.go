package commands

import (
	"context"

	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/domain/order"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

type QuickOrderCommand struct {
	Storefront string
	SessionID  string
	Quantity   int
	Name       string
	Phone      string
	Address    string
}

type QuickOrderHandler struct {
	checkoutUseCase *use_cases.CheckoutUseCase
	log             *logger.Logger
}

func NewQuickOrderHandler(
	checkoutUseCase *use_cases.CheckoutUseCase,
	log *logger.Logger,
) *QuickOrderHandler {
	return &QuickOrderHandler{
		checkoutUseCase: checkoutUseCase,
		log:             log,
	}
}

func (h *QuickOrderHandler) Handle(ctx context.Context, cmd QuickOrderCommand) (*CheckoutResponse, error) {
	h.log.Debug("Processing quick order request", "storefront", cmd.Storefront, "quantity", cmd.Quantity)

	result, err := h.checkoutUseCase.QuickOrder(ctx, use_cases.QuickOrderInput{
		Storefront: cmd.Storefront,
		SessionID:  cmd.SessionID,
		Quantity:   cmd.Quantity,
		Customer: order.CustomerDetails{
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
