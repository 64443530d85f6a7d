package use_cases

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	domainErrors "github.com/yuzvak/herbal-storefront/internal/domain/errors"
	"github.com/yuzvak/herbal-storefront/internal/domain/order"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/persistence/memory"
	"github.com/yuzvak/herbal-storefront/internal/pkg/generator"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

// secondLookupCatalog serves full on every lookup except the second, which
// returns second or err. QuickOrder looks the catalog up twice.
type secondLookupCatalog struct {
	full   *catalog.Catalog
	second *catalog.Catalog
	err    error
	calls  int
}

func (c *secondLookupCatalog) Catalog(ctx context.Context, storefront string) (*catalog.Catalog, error) {
	c.calls++
	if c.calls != 2 {
		return c.full, nil
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.second, nil
}

func (f *fixture) checkoutWithCatalog(catalogs *secondLookupCatalog) *CheckoutUseCase {
	return NewCheckoutUseCase(
		f.carts,
		catalogs,
		memory.NewSubmitGuard(f.clock),
		generator.NewCodeGenerator(),
		f.clock,
		f.metrics,
		logger.NewNopLogger(),
		2*time.Second,
	)
}

func herbalOilCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.NewCatalog([]catalog.Product{{ID: 1, Name: "Herbal Oil", Price: 499}})
	require.NoError(t, err)
	return c
}

var quickCustomer = order.CustomerDetails{Name: "Asha", Phone: "98765 43210", Address: "Chennai"}

var referencePattern = regexp.MustCompile(`^ORD-AVURYEDA-[0-9a-f]{8}$`)

func messageText(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("text")
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkout.Checkout(context.Background(), CheckoutInput{Storefront: "avuryeda", SessionID: "s1"})
	assert.ErrorIs(t, err, domainErrors.ErrEmptyCart)
	assert.Equal(t, []string{"empty_cart"}, f.metrics.failures)
	assert.Empty(t, f.metrics.links)
}

func TestCheckoutComposesLinkAndClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.Add(ctx, "avuryeda", "s1", 1, 2)
	require.NoError(t, err)

	res, err := f.checkout.Checkout(ctx, CheckoutInput{
		Storefront: "avuryeda",
		SessionID:  "s1",
		Customer:   &order.CustomerDetails{Name: "Asha", Phone: "98765 43210", Address: "Pune"},
	})
	require.NoError(t, err)

	assert.Regexp(t, referencePattern, res.Reference)
	assert.Equal(t, ChannelMessaging, res.Channel)
	assert.True(t, strings.HasPrefix(res.URL, "https://wa.me/919876543210?text="))
	assert.Equal(t, 2, res.ItemCount)
	assert.Equal(t, 718.0, res.Total)

	text := messageText(t, res.URL)
	assert.Contains(t, text, "Oil")
	assert.Contains(t, text, "2 × ₹359")
	assert.Contains(t, text, "₹718")
	assert.Contains(t, text, res.Reference)

	after, err := f.carts.Get(ctx, "avuryeda", "s1")
	require.NoError(t, err)
	assert.True(t, after.Cart.IsEmpty())

	raw, ok := f.store.Raw("avuryeda_cart:s1")
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))

	assert.Equal(t, 1, f.metrics.successes)
	assert.Equal(t, []string{ChannelMessaging}, f.metrics.links)
}

func TestCheckoutWithoutDetailsAsksForShipping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.Add(ctx, "avuryeda", "s1", 2, 1)
	require.NoError(t, err)

	res, err := f.checkout.Checkout(ctx, CheckoutInput{Storefront: "avuryeda", SessionID: "s1"})
	require.NoError(t, err)
	assert.Contains(t, res.Message, "*Please provide shipping details:*")
}

func TestCheckoutInvalidFormKeepsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.Add(ctx, "avuryeda", "s1", 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, CheckoutInput{
		Storefront: "avuryeda",
		SessionID:  "s1",
		Customer:   &order.CustomerDetails{Name: "Asha", Phone: "12345"},
	})
	ve, ok := domainErrors.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "phone")
	assert.Contains(t, ve.Fields, "address")

	after, err := f.carts.Get(ctx, "avuryeda", "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, after.Cart.ItemCount())

	// a rejected form does not hold the submit guard
	_, err = f.checkout.Checkout(ctx, CheckoutInput{
		Storefront: "avuryeda",
		SessionID:  "s1",
		Customer:   &order.CustomerDetails{Name: "Asha", Phone: "9876543210", Address: "Pune"},
	})
	require.NoError(t, err)
}

func TestCheckoutRequiredDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.Add(ctx, "care-ayurveda", "s1", 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, CheckoutInput{Storefront: "care-ayurveda", SessionID: "s1"})
	ve, ok := domainErrors.AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 3)
}

func TestCheckoutRequiredDetailsRejectsMarkupOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.Add(ctx, "care-ayurveda", "s1", 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, CheckoutInput{
		Storefront: "care-ayurveda",
		SessionID:  "s1",
		Customer:   &order.CustomerDetails{Name: "<b></b>", Phone: "9876543210", Address: "<i></i>"},
	})
	ve, ok := domainErrors.AsValidationError(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"name", "address"}, keysOf(ve.Fields))
	assert.Equal(t, []string{"invalid_form"}, f.metrics.failures)

	after, err := f.carts.Get(ctx, "care-ayurveda", "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, after.Cart.ItemCount())
}

func TestCheckoutOptionalDetailsTreatsMarkupOnlyAsBlank(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.Add(ctx, "avuryeda", "s1", 1, 1)
	require.NoError(t, err)

	res, err := f.checkout.Checkout(ctx, CheckoutInput{
		Storefront: "avuryeda",
		SessionID:  "s1",
		Customer:   &order.CustomerDetails{Name: "<b></b>", Address: "<p> </p>"},
	})
	require.NoError(t, err)
	assert.Contains(t, messageText(t, res.URL), "*Please provide shipping details:*")
}

func keysOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestCheckoutSubmitGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.Add(ctx, "avuryeda", "s1", 1, 1)
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, CheckoutInput{Storefront: "avuryeda", SessionID: "s1"})
	require.NoError(t, err)

	_, err = f.carts.Add(ctx, "avuryeda", "s1", 1, 1)
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, CheckoutInput{Storefront: "avuryeda", SessionID: "s1"})
	assert.ErrorIs(t, err, domainErrors.ErrCheckoutInProgress)

	f.clock.Advance(2 * time.Second)
	_, err = f.checkout.Checkout(ctx, CheckoutInput{Storefront: "avuryeda", SessionID: "s1"})
	assert.NoError(t, err)
}

func TestQuickOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.checkout.QuickOrder(ctx, QuickOrderInput{
		Storefront: "care-ayurveda",
		SessionID:  "s1",
		Quantity:   3,
		Customer:   order.CustomerDetails{Name: "Asha", Phone: "98765 43210", Address: "Chennai"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "https://wa.me/918925306239?text="))
	assert.Equal(t, 1497.0, res.Total)
	assert.Equal(t, 3, res.ItemCount)

	text := messageText(t, res.URL)
	assert.Contains(t, text, "Quantity: 3")
	assert.Contains(t, text, "Price: ₹499 each")
	assert.Contains(t, text, "Name: Asha")

	cartAfter, err := f.carts.Get(ctx, "care-ayurveda", "s1")
	require.NoError(t, err)
	assert.True(t, cartAfter.Cart.IsEmpty())
}

func TestQuickOrderValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.checkout.QuickOrder(ctx, QuickOrderInput{Storefront: "care-ayurveda", SessionID: "s1", Quantity: 1})
	_, ok := domainErrors.AsValidationError(err)
	assert.True(t, ok)

	_, err = f.checkout.QuickOrder(ctx, QuickOrderInput{Storefront: "avuryeda", SessionID: "s1", Quantity: 1})
	assert.ErrorIs(t, err, domainErrors.ErrQuickOrderDisabled)
}

func TestQuickOrderRejectsMarkupOnlyDetails(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkout.QuickOrder(context.Background(), QuickOrderInput{
		Storefront: "care-ayurveda",
		SessionID:  "s1",
		Quantity:   1,
		Customer:   order.CustomerDetails{Name: "<script>x</script>", Phone: "9876543210", Address: "<p></p>"},
	})
	ve, ok := domainErrors.AsValidationError(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"name", "address"}, keysOf(ve.Fields))
	assert.Equal(t, 0, f.metrics.successes)
}

func TestQuickOrderProductRemovedAfterQuote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	empty, err := catalog.NewCatalog(nil)
	require.NoError(t, err)
	uc := f.checkoutWithCatalog(&secondLookupCatalog{full: herbalOilCatalog(t), second: empty})

	in := QuickOrderInput{Storefront: "care-ayurveda", SessionID: "s1", Quantity: 2, Customer: quickCustomer}
	_, err = uc.QuickOrder(ctx, in)
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
	assert.Equal(t, []string{"product_not_found"}, f.metrics.failures)
	assert.Empty(t, f.metrics.links)

	res, err := uc.QuickOrder(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 998.0, res.Total)
}

func TestQuickOrderCatalogErrorRecordsFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	uc := f.checkoutWithCatalog(&secondLookupCatalog{full: herbalOilCatalog(t), err: assert.AnError})

	in := QuickOrderInput{Storefront: "care-ayurveda", SessionID: "s1", Quantity: 1, Customer: quickCustomer}
	_, err := uc.QuickOrder(ctx, in)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, f.metrics.attempts)
	assert.Equal(t, []string{"internal"}, f.metrics.failures)

	_, err = uc.QuickOrder(ctx, in)
	assert.NoError(t, err)
}

func TestQuoteClampsQuantity(t *testing.T) {
	f := newFixture(t)

	q, err := f.checkout.Quote(context.Background(), "care-ayurveda", 12)
	require.NoError(t, err)
	assert.Equal(t, 10, q.Quantity)
	assert.Equal(t, 4990.0, q.Total)

	_, err = f.checkout.Quote(context.Background(), "avuryeda", 1)
	assert.ErrorIs(t, err, domainErrors.ErrQuickOrderDisabled)
}

func TestContactURI(t *testing.T) {
	f := newFixture(t)

	tel, err := f.checkout.ContactURI("care-ayurveda", ChannelCall)
	require.NoError(t, err)
	assert.Equal(t, "tel:+918925306239", tel)

	mailto, err := f.checkout.ContactURI("care-ayurveda", ChannelEmail)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mailto, "mailto:careayurveda.contact@gmail.com?subject="))

	_, err = f.checkout.ContactURI("avuryeda", ChannelEmail)
	assert.ErrorIs(t, err, domainErrors.ErrContactUnavailable)

	assert.Equal(t, []string{ChannelCall, ChannelEmail}, f.metrics.links)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "invalid_form", FailureReason(domainErrors.NewValidationError(map[string]string{"name": "x"})))
	assert.Equal(t, "empty_cart", FailureReason(domainErrors.ErrEmptyCart))
	assert.Equal(t, "store_unavailable", FailureReason(domainErrors.ErrStoreUnavailable))
	assert.Equal(t, "internal", FailureReason(assert.AnError))
}
