package use_cases

import (
	"context"
	"fmt"

	"github.com/yuzvak/herbal-storefront/internal/application/ports"
	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	"github.com/yuzvak/herbal-storefront/internal/domain/errors"
	"github.com/yuzvak/herbal-storefront/internal/domain/storefront"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

const (
	OperationAdd    = "add"
	OperationRemove = "remove"
	OperationUpdate = "update"
	OperationClear  = "clear"
)

type CartResult struct {
	Storefront *storefront.Storefront
	Cart       cart.Cart
	// Product is set when an add found its product in the catalog.
	Product *catalog.Product
}

// CartService loads a slot, applies one cart transition and saves the result.
// Mutations of the same slot are serialised within the process.
type CartService struct {
	storefronts *storefront.Registry
	catalogs    ports.CatalogProvider
	store       ports.CartStore
	metrics     ports.Metrics
	log         *logger.Logger
	locks       *slotLocks
}

func NewCartService(
	storefronts *storefront.Registry,
	catalogs ports.CatalogProvider,
	store ports.CartStore,
	metrics ports.Metrics,
	log *logger.Logger,
) *CartService {
	return &CartService{
		storefronts: storefronts,
		catalogs:    catalogs,
		store:       store,
		metrics:     metrics,
		log:         log,
		locks:       newSlotLocks(),
	}
}

// SlotKey names the persisted cart of one session on one storefront.
func SlotKey(sf *storefront.Storefront, sessionID string) string {
	return fmt.Sprintf("%s:%s", sf.StorageKey, sessionID)
}

func (s *CartService) Storefront(key string) (*storefront.Storefront, error) {
	return s.storefronts.Get(key)
}

func (s *CartService) Get(ctx context.Context, variant, sessionID string) (*CartResult, error) {
	sf, err := s.storefronts.Get(variant)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, SlotKey(sf, sessionID))
	if err != nil {
		return nil, err
	}

	return &CartResult{Storefront: sf, Cart: c}, nil
}

// Add puts quantity units of a catalog product into the cart. A product
// missing from the catalog leaves the cart untouched and unsaved.
func (s *CartService) Add(ctx context.Context, variant, sessionID string, productID int64, quantity int) (*CartResult, error) {
	if quantity < 1 {
		return nil, errors.ErrInvalidQuantity
	}

	sf, err := s.storefronts.Get(variant)
	if err != nil {
		return nil, err
	}

	products, err := s.catalogs.Catalog(ctx, sf.Key)
	if err != nil {
		return nil, err
	}

	product, found := products.Find(productID)

	result := &CartResult{Storefront: sf}
	result.Cart, err = s.mutate(ctx, sf, sessionID, func(c cart.Cart) (cart.Cart, bool, error) {
		if !found {
			return c, false, nil
		}
		next, err := c.Add(product, quantity)
		return next, err == nil, err
	})
	if err != nil {
		return nil, err
	}

	if !found {
		s.log.Debug("Product not in catalog, add ignored", "storefront", sf.Key, "product_id", productID)
		return result, nil
	}

	result.Product = &product
	s.metrics.CartOperation(sf.Key, OperationAdd)
	return result, nil
}

func (s *CartService) Remove(ctx context.Context, variant, sessionID string, productID int64) (*CartResult, error) {
	return s.apply(ctx, variant, sessionID, OperationRemove, func(c cart.Cart) cart.Cart {
		return c.Remove(productID)
	})
}

// UpdateQuantity overwrites a line's quantity; zero or below removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, variant, sessionID string, productID int64, quantity int) (*CartResult, error) {
	return s.apply(ctx, variant, sessionID, OperationUpdate, func(c cart.Cart) cart.Cart {
		return c.UpdateQuantity(productID, quantity)
	})
}

func (s *CartService) Clear(ctx context.Context, variant, sessionID string) (*CartResult, error) {
	return s.apply(ctx, variant, sessionID, OperationClear, func(c cart.Cart) cart.Cart {
		return c.Clear()
	})
}

// Checkout hands the current cart to fn while holding the slot, and saves an
// empty cart when fn succeeds.
func (s *CartService) Checkout(ctx context.Context, sf *storefront.Storefront, sessionID string, fn func(cart.Cart) error) error {
	_, err := s.mutate(ctx, sf, sessionID, func(c cart.Cart) (cart.Cart, bool, error) {
		if err := fn(c); err != nil {
			return c, false, err
		}
		return c.Clear(), true, nil
	})
	if err != nil {
		return err
	}

	s.metrics.CartOperation(sf.Key, OperationClear)
	return nil
}

func (s *CartService) apply(ctx context.Context, variant, sessionID, operation string, fn func(cart.Cart) cart.Cart) (*CartResult, error) {
	sf, err := s.storefronts.Get(variant)
	if err != nil {
		return nil, err
	}

	c, err := s.mutate(ctx, sf, sessionID, func(c cart.Cart) (cart.Cart, bool, error) {
		return fn(c), true, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CartOperation(sf.Key, operation)
	return &CartResult{Storefront: sf, Cart: c}, nil
}

func (s *CartService) mutate(ctx context.Context, sf *storefront.Storefront, sessionID string, fn func(cart.Cart) (cart.Cart, bool, error)) (cart.Cart, error) {
	slot := SlotKey(sf, sessionID)

	unlock := s.locks.lock(slot)
	defer unlock()

	current, err := s.load(ctx, slot)
	if err != nil {
		return cart.Cart{}, err
	}

	next, persist, err := fn(current)
	if err != nil {
		return current, err
	}
	if !persist {
		return next, nil
	}

	if err := s.store.Save(ctx, slot, next); err != nil {
		s.log.Error("Failed to save cart", "error", err, "slot", slot)
		return cart.Cart{}, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}

	return next, nil
}

func (s *CartService) load(ctx context.Context, slot string) (cart.Cart, error) {
	c, err := s.store.Load(ctx, slot)
	if err != nil {
		s.log.Error("Failed to load cart", "error", err, "slot", slot)
		return cart.Cart{}, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return c, nil
}
