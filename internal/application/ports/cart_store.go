package ports

import (
	"context"

	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
)

// CartStore persists one cart per slot. Load returns an empty cart for a
// missing or unreadable value; only store outages are reported as errors.
type CartStore interface {
	Load(ctx context.Context, slot string) (cart.Cart, error)
	Save(ctx context.Context, slot string, c cart.Cart) error
}
