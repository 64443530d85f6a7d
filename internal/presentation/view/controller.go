package view

import (
	"context"
	stdErrors "errors"

	"github.com/yuzvak/herbal-storefront/internal/application/commands"
	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/domain/errors"
	"github.com/yuzvak/herbal-storefront/internal/domain/order"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

const (
	MsgCartEmpty        = "Your cart is empty!"
	MsgInvalidForm      = "Please fill all required fields correctly!"
	MsgOrderPlaced      = "Order placed successfully! Please complete your details on WhatsApp."
	MsgOpeningMessaging = "Opening WhatsApp for order placement..."
	MsgInProgress       = "Your order is already being placed, please wait."
)

func AddedMessage(productName string) string {
	return productName + " added to cart!"
}

// Session identifies whose cart a controller call acts on.
type Session struct {
	Storefront string
	ID         string
}

// Controller turns page events into cart service calls and tells the View
// what to draw. Errors are returned after any user-facing toast is shown.
type Controller struct {
	carts      *use_cases.CartService
	checkout   *commands.CheckoutHandler
	quickOrder *commands.QuickOrderHandler
	log        *logger.Logger
}

func NewController(
	carts *use_cases.CartService,
	checkout *commands.CheckoutHandler,
	quickOrder *commands.QuickOrderHandler,
	log *logger.Logger,
) *Controller {
	return &Controller{
		carts:      carts,
		checkout:   checkout,
		quickOrder: quickOrder,
		log:        log,
	}
}

func (c *Controller) Show(ctx context.Context, s Session, v View) error {
	result, err := c.carts.Get(ctx, s.Storefront, s.ID)
	if err != nil {
		return err
	}
	v.Render(Render(result.Cart, result.Storefront))
	return nil
}

func (c *Controller) OnAdd(ctx context.Context, s Session, v View, productID int64, quantity int) error {
	result, err := c.carts.Add(ctx, s.Storefront, s.ID, productID, quantity)
	if err != nil {
		return err
	}

	if result.Product != nil {
		v.Toast(SuccessToast(AddedMessage(result.Product.Name)))
	}
	v.Render(Render(result.Cart, result.Storefront))
	return nil
}

func (c *Controller) OnRemove(ctx context.Context, s Session, v View, productID int64) error {
	result, err := c.carts.Remove(ctx, s.Storefront, s.ID, productID)
	if err != nil {
		return err
	}
	v.Render(Render(result.Cart, result.Storefront))
	return nil
}

func (c *Controller) OnQuantityChange(ctx context.Context, s Session, v View, productID int64, quantity int) error {
	result, err := c.carts.UpdateQuantity(ctx, s.Storefront, s.ID, productID, quantity)
	if err != nil {
		return err
	}
	v.Render(Render(result.Cart, result.Storefront))
	return nil
}

func (c *Controller) OnCheckout(ctx context.Context, s Session, v View, customer order.CustomerDetails) (*commands.CheckoutResponse, error) {
	resp, err := c.checkout.Handle(ctx, commands.CheckoutCommand{
		Storefront: s.Storefront,
		SessionID:  s.ID,
		Name:       customer.Name,
		Phone:      customer.Phone,
		Address:    customer.Address,
	})
	if err != nil {
		c.toastFailure(v, err)
		return nil, err
	}

	v.Navigate(Navigation{URL: resp.URL, Channel: resp.Channel, NewContext: true})
	v.Toast(SuccessToast(MsgOrderPlaced))

	sf, err := c.carts.Storefront(s.Storefront)
	if err != nil {
		return nil, err
	}
	v.Render(Render(cart.Cart{}, sf))
	return resp, nil
}

func (c *Controller) OnQuickOrder(ctx context.Context, s Session, v View, quantity int, customer order.CustomerDetails) (*commands.CheckoutResponse, error) {
	resp, err := c.quickOrder.Handle(ctx, commands.QuickOrderCommand{
		Storefront: s.Storefront,
		SessionID:  s.ID,
		Quantity:   quantity,
		Name:       customer.Name,
		Phone:      customer.Phone,
		Address:    customer.Address,
	})
	if err != nil {
		c.toastFailure(v, err)
		return nil, err
	}

	v.Toast(SuccessToast(MsgOpeningMessaging))
	v.Navigate(Navigation{URL: resp.URL, Channel: resp.Channel, NewContext: true})
	return resp, nil
}

func (c *Controller) toastFailure(v View, err error) {
	if _, ok := errors.AsValidationError(err); ok {
		v.Toast(ErrorToast(MsgInvalidForm))
		return
	}

	switch {
	case stdErrors.Is(err, errors.ErrEmptyCart):
		v.Toast(ErrorToast(MsgCartEmpty))
	case stdErrors.Is(err, errors.ErrCheckoutInProgress):
		v.Toast(ErrorToast(MsgInProgress))
	default:
		c.log.Debug("No toast for checkout failure", "error", err)
	}
}
