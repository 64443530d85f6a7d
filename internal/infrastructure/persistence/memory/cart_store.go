package memory

import (
	"context"
	"sync"

	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

// CartStore keeps serialised carts in process memory, in the same format the
// Redis store writes.
type CartStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
	log   *logger.Logger
}

func NewCartStore(log *logger.Logger) *CartStore {
	return &CartStore{
		slots: make(map[string][]byte),
		log:   log,
	}
}

func (s *CartStore) Load(ctx context.Context, slot string) (cart.Cart, error) {
	s.mu.RLock()
	data, ok := s.slots[slot]
	s.mu.RUnlock()

	if !ok {
		return cart.Cart{}, nil
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

	s.mu.Lock()
	s.slots[slot] = data
	s.mu.Unlock()
	return nil
}

// Put stores a raw slot value as is.
func (s *CartStore) Put(slot string, data []byte) {
	s.mu.Lock()
	s.slots[slot] = append([]byte(nil), data...)
	s.mu.Unlock()
}

func (s *CartStore) Raw(slot string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.slots[slot]
	return data, ok
}
