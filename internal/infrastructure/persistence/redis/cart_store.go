package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

// CartStore keeps each cart slot as one JSON string key. A zero ttl keeps
// carts forever; otherwise every save pushes the expiry forward.
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewCartStore(conn *Connection, ttl time.Duration, log *logger.Logger) *CartStore {
	return &CartStore{
		client: conn.GetClient(),
		ttl:    ttl,
		log:    log,
	}
}

func cartKey(slot string) string {
	return fmt.Sprintf("cart:%s", slot)
}

func (s *CartStore) Load(ctx context.Context, slot string) (cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(slot)).Bytes()
	if err == redis.Nil {
		return cart.Cart{}, nil
	}
	if err != nil {
		return cart.Cart{}, err
	}

	c, err := cart.Decode(data)
	if err != nil {
		s.log.Warn("Discarding unreadable cart", "slot", slot, "error", err)
		return cart.Cart{}, nil
	}
	return c, nil
}

func (s *CartStore) Save(ctx context.Context, slot string, c cart.Cart) error {
	data, err := cart.Encode(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(slot), data, s.ttl).Err()
}
