package use_cases

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/yuzvak/herbal-storefront/internal/application/ports"
	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/domain/errors"
	"github.com/yuzvak/herbal-storefront/internal/domain/order"
	"github.com/yuzvak/herbal-storefront/internal/domain/storefront"
	"github.com/yuzvak/herbal-storefront/internal/pkg/clock"
	"github.com/yuzvak/herbal-storefront/internal/pkg/generator"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

const (
	ChannelMessaging = "messaging"
	ChannelCall      = "call"
	ChannelEmail     = "email"
)

type CheckoutInput struct {
	Storefront string
	SessionID  string
	Customer   *order.CustomerDetails
}

type QuickOrderInput struct {
	Storefront string
	SessionID  string
	Quantity   int
	Customer   order.CustomerDetails
}

type CheckoutResult struct {
	Reference string
	Channel   string
	URL       string
	Message   string
	ItemCount int
	Total     float64
}

type CheckoutUseCase struct {
	carts    *CartService
	catalogs ports.CatalogProvider
	guard    ports.SubmitGuard
	codeGen  *generator.CodeGenerator
	clock    clock.Clock
	metrics  ports.Metrics
	log      *logger.Logger

	submitWindow time.Duration
}

func NewCheckoutUseCase(
	carts *CartService,
	catalogs ports.CatalogProvider,
	guard ports.SubmitGuard,
	codeGen *generator.CodeGenerator,
	clk clock.Clock,
	metrics ports.Metrics,
	log *logger.Logger,
	submitWindow time.Duration,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:        carts,
		catalogs:     catalogs,
		guard:        guard,
		codeGen:      codeGen,
		clock:        clk,
		metrics:      metrics,
		log:          log,
		submitWindow: submitWindow,
	}
}

// Checkout composes a messaging deep link from the session cart and empties
// the cart. The link is the only record of the order.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	sf, err := uc.carts.Storefront(in.Storefront)
	if err != nil {
		return nil, err
	}

	uc.metrics.CheckoutAttempt(sf.Key, string(order.KindCart))

	guardKey := fmt.Sprintf("checkout:%s:%s", sf.Key, in.SessionID)
	if err := uc.acquire(ctx, guardKey); err != nil {
		uc.fail(sf, order.KindCart, err)
		return nil, err
	}

	var result *CheckoutResult
	err = uc.carts.Checkout(ctx, sf, in.SessionID, func(c cart.Cart) error {
		if c.IsEmpty() {
			return errors.ErrEmptyCart
		}

		if err := validateCustomer(sf, in.Customer); err != nil {
			return err
		}

		reference, err := uc.codeGen.GenerateOrderReference(sf.Key)
		if err != nil {
			return fmt.Errorf("generate order reference: %w", err)
		}

		req, err := order.NewCartRequest(reference, c, in.Customer, uc.clock.Now())
		if err != nil {
			return err
		}

		result = uc.compose(sf, req)
		return nil
	})
	if err != nil {
		uc.release(ctx, guardKey)
		uc.fail(sf, order.KindCart, err)
		return nil, err
	}

	uc.metrics.CheckoutSuccess(sf.Key, string(order.KindCart))
	uc.metrics.DeepLink(sf.Key, ChannelMessaging)
	uc.log.Info("Order composed",
		"storefront", sf.Key,
		"reference", result.Reference,
		"item_count", result.ItemCount,
		"total", result.Total,
	)

	return result, nil
}

// QuickOrder composes a single-product order from the quantity selector.
// The cart is not touched and customer details are always required.
func (uc *CheckoutUseCase) QuickOrder(ctx context.Context, in QuickOrderInput) (*CheckoutResult, error) {
	sf, err := uc.carts.Storefront(in.Storefront)
	if err != nil {
		return nil, err
	}

	if !sf.QuickOrder.Enabled() {
		return nil, errors.ErrQuickOrderDisabled
	}

	uc.metrics.CheckoutAttempt(sf.Key, string(order.KindQuick))

	if err := in.Customer.Validate(); err != nil {
		uc.fail(sf, order.KindQuick, err)
		return nil, err
	}

	quote, err := uc.Quote(ctx, sf.Key, in.Quantity)
	if err != nil {
		uc.fail(sf, order.KindQuick, err)
		return nil, err
	}

	guardKey := fmt.Sprintf("quick-order:%s:%s", sf.Key, in.SessionID)
	if err := uc.acquire(ctx, guardKey); err != nil {
		uc.fail(sf, order.KindQuick, err)
		return nil, err
	}

	products, err := uc.catalogs.Catalog(ctx, sf.Key)
	if err != nil {
		uc.release(ctx, guardKey)
		uc.fail(sf, order.KindQuick, err)
		return nil, err
	}
	product, found := products.Find(quote.ProductID)
	if !found {
		uc.release(ctx, guardKey)
		uc.fail(sf, order.KindQuick, errors.ErrProductNotFound)
		return nil, errors.ErrProductNotFound
	}

	reference, err := uc.codeGen.GenerateOrderReference(sf.Key)
	if err != nil {
		uc.release(ctx, guardKey)
		return nil, fmt.Errorf("generate order reference: %w", err)
	}

	customer := in.Customer
	req, err := order.NewQuickRequest(reference, product, quote.Quantity, &customer, sf.QuickOrder.Notes, uc.clock.Now())
	if err != nil {
		uc.release(ctx, guardKey)
		uc.fail(sf, order.KindQuick, err)
		return nil, err
	}

	result := uc.compose(sf, req)

	uc.metrics.CheckoutSuccess(sf.Key, string(order.KindQuick))
	uc.metrics.DeepLink(sf.Key, ChannelMessaging)
	uc.log.Info("Quick order composed",
		"storefront", sf.Key,
		"reference", result.Reference,
		"quantity", quote.Quantity,
		"total", result.Total,
	)

	return result, nil
}

func (uc *CheckoutUseCase) Quote(ctx context.Context, variant string, quantity int) (order.Quote, error) {
	sf, err := uc.carts.Storefront(variant)
	if err != nil {
		return order.Quote{}, err
	}

	if !sf.QuickOrder.Enabled() {
		return order.Quote{}, errors.ErrQuickOrderDisabled
	}

	products, err := uc.catalogs.Catalog(ctx, sf.Key)
	if err != nil {
		return order.Quote{}, err
	}

	product, ok := products.Find(sf.QuickOrder.ProductID)
	if !ok {
		return order.Quote{}, errors.ErrProductNotFound
	}

	return order.NewQuote(product, sf.QuickOrder, quantity)
}

// ContactURI returns the tel: or mailto: link for the storefront.
func (uc *CheckoutUseCase) ContactURI(variant, channel string) (string, error) {
	sf, err := uc.carts.Storefront(variant)
	if err != nil {
		return "", err
	}

	composer := order.NewComposer(sf)

	var uri string
	switch channel {
	case ChannelCall:
		uri = composer.TelURI()
	case ChannelEmail:
		uri, err = composer.MailtoURI()
		if err != nil {
			return "", err
		}
	default:
		return "", errors.ErrContactUnavailable
	}

	uc.metrics.DeepLink(sf.Key, channel)
	return uri, nil
}

func (uc *CheckoutUseCase) compose(sf *storefront.Storefront, req *order.Request) *CheckoutResult {
	composer := order.NewComposer(sf)
	return &CheckoutResult{
		Reference: req.Reference,
		Channel:   ChannelMessaging,
		URL:       composer.MessagingURL(req),
		Message:   composer.Message(req),
		ItemCount: req.ItemCount(),
		Total:     req.Total,
	}
}

func (uc *CheckoutUseCase) acquire(ctx context.Context, key string) error {
	if uc.submitWindow <= 0 || uc.guard == nil {
		return nil
	}

	ok, err := uc.guard.Acquire(ctx, key, uc.submitWindow)
	if err != nil {
		uc.log.Warn("Submit guard unavailable", "error", err, "key", key)
		return nil
	}
	if !ok {
		return errors.ErrCheckoutInProgress
	}
	return nil
}

func (uc *CheckoutUseCase) release(ctx context.Context, key string) {
	if uc.submitWindow <= 0 || uc.guard == nil {
		return
	}
	if err := uc.guard.Release(ctx, key); err != nil {
		uc.log.Warn("Failed to release submit guard", "error", err, "key", key)
	}
}

func (uc *CheckoutUseCase) fail(sf *storefront.Storefront, kind order.Kind, err error) {
	reason := FailureReason(err)
	uc.metrics.CheckoutFailure(sf.Key, string(kind), reason)
	uc.log.Warn("Checkout rejected", "storefront", sf.Key, "kind", kind, "reason", reason)
}

// validateCustomer applies the storefront form policy: required storefronts
// always validate, others only when some detail was entered.
func validateCustomer(sf *storefront.Storefront, customer *order.CustomerDetails) error {
	if customer == nil {
		customer = &order.CustomerDetails{}
	}
	if !sf.RequireCustomerDetails && customer.Sanitized().IsBlank() {
		return nil
	}
	return customer.Validate()
}

func FailureReason(err error) string {
	if _, ok := errors.AsValidationError(err); ok {
		return "invalid_form"
	}

	switch {
	case stdErrors.Is(err, errors.ErrEmptyCart):
		return "empty_cart"
	case stdErrors.Is(err, errors.ErrCheckoutInProgress):
		return "in_progress"
	case stdErrors.Is(err, errors.ErrStoreUnavailable):
		return "store_unavailable"
	case stdErrors.Is(err, errors.ErrInvalidQuantity):
		return "invalid_quantity"
	case stdErrors.Is(err, errors.ErrProductNotFound):
		return "product_not_found"
	default:
		return "internal"
	}
}
