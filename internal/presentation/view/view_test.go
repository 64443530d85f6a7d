package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/herbal-storefront/internal/application/commands"
	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	"github.com/yuzvak/herbal-storefront/internal/domain/errors"
	"github.com/yuzvak/herbal-storefront/internal/domain/order"
	"github.com/yuzvak/herbal-storefront/internal/domain/storefront"
	catalogSource "github.com/yuzvak/herbal-storefront/internal/infrastructure/catalog"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/monitoring"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/persistence/memory"
	"github.com/yuzvak/herbal-storefront/internal/pkg/clock"
	"github.com/yuzvak/herbal-storefront/internal/pkg/generator"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
	"github.com/yuzvak/herbal-storefront/internal/pkg/timers"
)

var (
	oil = catalog.Product{ID: 1, Name: "AVURYEDA Hair Oil", Price: 359, Images: []string{"images/product-front.png"}}
	sf  = &storefront.Storefront{Key: "avuryeda", Brand: "AVURYEDA Hair Oil", Currency: "₹"}
)

func TestRenderTwoLineCart(t *testing.T) {
	c, err := cart.Cart{}.Add(oil, 2)
	require.NoError(t, err)

	vm := Render(c, sf)

	assert.Equal(t, "avuryeda", vm.Storefront)
	assert.Equal(t, 2, vm.ItemCount)
	assert.Equal(t, 718.0, vm.Total)
	assert.Equal(t, "₹718.00", vm.TotalDisplay)
	assert.True(t, vm.BadgeVisible)
	assert.False(t, vm.Empty)

	require.Len(t, vm.Items, 1)
	assert.Equal(t, "images/product-front.png", vm.Items[0].Image)
	assert.Equal(t, "₹359.00", vm.Items[0].PriceDisplay)
	assert.Equal(t, "₹718.00", vm.Items[0].SubtotalDisplay)
}

func TestRenderEmptyCart(t *testing.T) {
	vm := Render(cart.Cart{}, &storefront.Storefront{Key: "care-ayurveda"})

	assert.True(t, vm.Empty)
	assert.False(t, vm.BadgeVisible)
	assert.NotNil(t, vm.Items)
	assert.Empty(t, vm.Items)
	assert.Equal(t, storefront.DefaultCurrency+"0.00", vm.TotalDisplay)
}

func TestFormatMoneyGroupsThousands(t *testing.T) {
	assert.Equal(t, "₹1,436.00", FormatMoney("₹", 1436))
	assert.Equal(t, "₹249.50", FormatMoney("₹", 249.5))
}

func TestRenderDescription(t *testing.T) {
	assert.Equal(t, "", RenderDescription("   "))

	out := RenderDescription("**Cold pressed** with [bhringraj](https://example.com/herbs)")
	assert.Contains(t, out, "<strong>Cold pressed</strong>")
	assert.Contains(t, out, `rel="nofollow"`)

	unsafe := RenderDescription("Nice oil\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\">x</a>")
	assert.NotContains(t, unsafe, "<script")
	assert.NotContains(t, unsafe, "javascript:")
	assert.Contains(t, unsafe, "Nice oil")
}

func TestRenderProduct(t *testing.T) {
	pv := RenderProduct(catalog.Product{ID: 9, Name: "Comb", Price: 99}, "₹")
	assert.Equal(t, "₹99.00", pv.PriceDisplay)
	assert.NotNil(t, pv.Images)
	assert.Equal(t, "", pv.Image)
	assert.Equal(t, "", pv.DescriptionHTML)
}

func TestToastBoardDismissesAfterTimeout(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	board := NewToastBoard(timers.NewGroup(clk), 0)

	first := board.Push("s1", SuccessToast("one"))
	assert.Equal(t, int64(3000), first.DismissMs)

	clk.Advance(time.Second)
	board.Push("s1", ErrorToast("two"))
	board.Push("s2", SuccessToast("other session"))

	require.Len(t, board.Active("s1"), 2)

	clk.Advance(2 * time.Second)
	active := board.Active("s1")
	require.Len(t, active, 1)
	assert.Equal(t, "two", active[0].Message)

	clk.Advance(time.Second)
	assert.Empty(t, board.Active("s1"))
	assert.Empty(t, board.Active("s2"))
}

func TestToastBoardCloseCancelsPendingDismissals(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	board := NewToastBoard(timers.NewGroup(clk), time.Second)

	board.Push("s1", SuccessToast("one"))
	board.Push("s1", SuccessToast("two"))
	require.Equal(t, 2, clk.Pending())

	board.Close()
	assert.Equal(t, 0, clk.Pending())
}

type controllerFixture struct {
	ctrl  *Controller
	board *ToastBoard
	clock *clock.FakeClock
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()

	registry, err := storefront.NewRegistry([]storefront.Storefront{
		{
			Key:          "avuryeda",
			Brand:        "AVURYEDA Hair Oil",
			ProductTitle: "AVURYEDA Herbal Hair Oil",
			Contact:      storefront.Contact{Phone: "919876543210"},
		},
		{
			Key:                    "care-ayurveda",
			Brand:                  "Care Ayurveda Hair Oil",
			ProductTitle:           "Care Ayurveda Homemade Herbal Hair Growth Oil",
			RequireCustomerDetails: true,
			Contact:                storefront.Contact{Phone: "918925306239"},
			QuickOrder:             &storefront.QuickOrder{ProductID: 1},
		},
	})
	require.NoError(t, err)

	snapshot := catalogSource.NewSnapshot()
	require.NoError(t, snapshot.Replace("avuryeda", []catalog.Product{oil}))
	require.NoError(t, snapshot.Replace("care-ayurveda", []catalog.Product{{ID: 1, Name: "Herbal Oil", Price: 499}}))

	log := logger.NewNopLogger()
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	metrics := monitoring.NewBusinessMetrics()

	carts := use_cases.NewCartService(registry, snapshot, memory.NewCartStore(log), metrics, log)
	checkout := use_cases.NewCheckoutUseCase(
		carts, snapshot, memory.NewSubmitGuard(clk), generator.NewCodeGenerator(), clk, metrics, log, 0,
	)

	return &controllerFixture{
		ctrl: NewController(
			carts,
			commands.NewCheckoutHandler(checkout, log),
			commands.NewQuickOrderHandler(checkout, log),
			log,
		),
		board: NewToastBoard(timers.NewGroup(clk), 0),
		clock: clk,
	}
}

func TestControllerAddRendersAndToasts(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	s := Session{Storefront: "avuryeda", ID: "session-1"}
	rec := NewRecorder(f.board, s.ID)

	require.NoError(t, f.ctrl.OnAdd(ctx, s, rec, 1, 1))

	frame := rec.Frame()
	require.NotNil(t, frame.Cart)
	assert.Equal(t, 1, frame.Cart.ItemCount)
	require.Len(t, frame.Toasts, 1)
	assert.Equal(t, "AVURYEDA Hair Oil added to cart!", frame.Toasts[0].Message)
	assert.Len(t, f.board.Active(s.ID), 1)
}

func TestControllerAddOfUnknownProductIsSilent(t *testing.T) {
	f := newControllerFixture(t)
	s := Session{Storefront: "avuryeda", ID: "session-1"}
	rec := NewRecorder(nil, s.ID)

	require.NoError(t, f.ctrl.OnAdd(context.Background(), s, rec, 404, 1))

	frame := rec.Frame()
	assert.Empty(t, frame.Toasts)
	require.NotNil(t, frame.Cart)
	assert.True(t, frame.Cart.Empty)
}

func TestControllerQuantityChangeAndRemove(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	s := Session{Storefront: "avuryeda", ID: "session-1"}

	require.NoError(t, f.ctrl.OnAdd(ctx, s, NewRecorder(nil, s.ID), 1, 1))

	rec := NewRecorder(nil, s.ID)
	require.NoError(t, f.ctrl.OnQuantityChange(ctx, s, rec, 1, 4))
	assert.Equal(t, 4, rec.Frame().Cart.ItemCount)

	rec = NewRecorder(nil, s.ID)
	require.NoError(t, f.ctrl.OnRemove(ctx, s, rec, 1))
	assert.True(t, rec.Frame().Cart.Empty)
}

func TestControllerCheckoutEmptyCart(t *testing.T) {
	f := newControllerFixture(t)
	s := Session{Storefront: "avuryeda", ID: "session-1"}
	rec := NewRecorder(nil, s.ID)

	_, err := f.ctrl.OnCheckout(context.Background(), s, rec, order.CustomerDetails{})
	assert.ErrorIs(t, err, errors.ErrEmptyCart)

	frame := rec.Frame()
	require.Len(t, frame.Toasts, 1)
	assert.Equal(t, ToastError, frame.Toasts[0].Kind)
	assert.Equal(t, MsgCartEmpty, frame.Toasts[0].Message)
	assert.Nil(t, frame.Navigation)
}

func TestControllerCheckoutNavigatesAndClears(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	s := Session{Storefront: "avuryeda", ID: "session-1"}
	require.NoError(t, f.ctrl.OnAdd(ctx, s, NewRecorder(nil, s.ID), 1, 2))

	rec := NewRecorder(nil, s.ID)
	resp, err := f.ctrl.OnCheckout(ctx, s, rec, order.CustomerDetails{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ItemCount)

	frame := rec.Frame()
	require.NotNil(t, frame.Navigation)
	assert.True(t, frame.Navigation.NewContext)
	assert.Contains(t, frame.Navigation.URL, "https://wa.me/919876543210?text=")
	require.Len(t, frame.Toasts, 1)
	assert.Equal(t, MsgOrderPlaced, frame.Toasts[0].Message)
	require.NotNil(t, frame.Cart)
	assert.True(t, frame.Cart.Empty)

	show := NewRecorder(nil, s.ID)
	require.NoError(t, f.ctrl.Show(ctx, s, show))
	assert.True(t, show.Frame().Cart.Empty)
}

func TestControllerQuickOrderInvalidForm(t *testing.T) {
	f := newControllerFixture(t)
	s := Session{Storefront: "care-ayurveda", ID: "session-1"}
	rec := NewRecorder(nil, s.ID)

	_, err := f.ctrl.OnQuickOrder(context.Background(), s, rec, 2, order.CustomerDetails{Name: "Asha"})
	_, isValidation := errors.AsValidationError(err)
	assert.True(t, isValidation)

	frame := rec.Frame()
	require.Len(t, frame.Toasts, 1)
	assert.Equal(t, MsgInvalidForm, frame.Toasts[0].Message)
}

func TestControllerQuickOrderOpensMessaging(t *testing.T) {
	f := newControllerFixture(t)
	s := Session{Storefront: "care-ayurveda", ID: "session-1"}
	rec := NewRecorder(nil, s.ID)

	resp, err := f.ctrl.OnQuickOrder(context.Background(), s, rec, 2, order.CustomerDetails{
		Name:    "Asha",
		Phone:   "98765 43210",
		Address: "12 MG Road, Chennai",
	})
	require.NoError(t, err)
	assert.Equal(t, 998.0, resp.Total)

	frame := rec.Frame()
	require.NotNil(t, frame.Navigation)
	assert.Contains(t, frame.Navigation.URL, "https://wa.me/918925306239?text=")
	require.Len(t, frame.Toasts, 1)
	assert.Equal(t, MsgOpeningMessaging, frame.Toasts[0].Message)
}
