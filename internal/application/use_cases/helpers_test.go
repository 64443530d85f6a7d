package use_cases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	"github.com/yuzvak/herbal-storefront/internal/domain/storefront"
	catalogSource "github.com/yuzvak/herbal-storefront/internal/infrastructure/catalog"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/persistence/memory"
	"github.com/yuzvak/herbal-storefront/internal/pkg/clock"
	"github.com/yuzvak/herbal-storefront/internal/pkg/generator"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

type recordedMetrics struct {
	mu        sync.Mutex
	ops       []string
	attempts  int
	successes int
	failures  []string
	links     []string
}

func (m *recordedMetrics) CartOperation(storefront, operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, operation)
}

func (m *recordedMetrics) CheckoutAttempt(storefront, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
}

func (m *recordedMetrics) CheckoutSuccess(storefront, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes++
}

func (m *recordedMetrics) CheckoutFailure(storefront, kind, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, reason)
}

func (m *recordedMetrics) DeepLink(storefront, channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, channel)
}

type failingStore struct{ err error }

func (s failingStore) Load(ctx context.Context, slot string) (cart.Cart, error) {
	return cart.Cart{}, s.err
}

func (s failingStore) Save(ctx context.Context, slot string, c cart.Cart) error {
	return s.err
}

type fixture struct {
	store    *memory.CartStore
	clock    *clock.FakeClock
	metrics  *recordedMetrics
	carts    *CartService
	checkout *CheckoutUseCase
}

var (
	oil     = catalog.Product{ID: 1, Name: "Oil", Price: 359, Images: []string{"images/product-front.png"}}
	shampoo = catalog.Product{ID: 2, Name: "Shampoo", Price: 249, Images: []string{"images/shampoo.png"}}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry, err := storefront.NewRegistry([]storefront.Storefront{
		{
			Key:          "avuryeda",
			Brand:        "AVURYEDA Hair Oil",
			StorageKey:   "avuryeda_cart",
			Contact:      storefront.Contact{Phone: "919876543210"},
			ProductTitle: "AVURYEDA Herbal Hair Oil",
		},
		{
			Key:                    "care-ayurveda",
			Brand:                  "Care Ayurveda Hair Oil",
			ProductTitle:           "Care Ayurveda Homemade Herbal Hair Growth Oil",
			RequireCustomerDetails: true,
			Contact: storefront.Contact{
				Phone: "918925306239",
				Email: "careayurveda.contact@gmail.com",
			},
			QuickOrder: &storefront.QuickOrder{ProductID: 1},
		},
	})
	require.NoError(t, err)

	snapshot := catalogSource.NewSnapshot()
	require.NoError(t, snapshot.Replace("avuryeda", []catalog.Product{oil, shampoo}))
	require.NoError(t, snapshot.Replace("care-ayurveda", []catalog.Product{{ID: 1, Name: "Herbal Oil", Price: 499}}))

	log := logger.NewNopLogger()
	f := &fixture{
		store:   memory.NewCartStore(log),
		clock:   clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		metrics: &recordedMetrics{},
	}
	f.carts = NewCartService(registry, snapshot, f.store, f.metrics, log)
	f.checkout = NewCheckoutUseCase(
		f.carts,
		snapshot,
		memory.NewSubmitGuard(f.clock),
		generator.NewCodeGenerator(),
		f.clock,
		f.metrics,
		log,
		2*time.Second,
	)
	return f
}
