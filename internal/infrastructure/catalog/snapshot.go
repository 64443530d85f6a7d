package catalog

import (
	"context"
	"sync"

	domainCatalog "github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	"github.com/yuzvak/herbal-storefront/internal/domain/errors"
)

// Snapshot serves the current catalog of every storefront. Catalogs are
// immutable and replaced wholesale.
type Snapshot struct {
	mu       sync.RWMutex
	catalogs map[string]*domainCatalog.Catalog
}

func NewSnapshot() *Snapshot {
	return &Snapshot{catalogs: make(map[string]*domainCatalog.Catalog)}
}

func (s *Snapshot) Catalog(ctx context.Context, storefront string) (*domainCatalog.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[storefront]
	if !ok {
		return nil, errors.ErrStorefrontNotFound
	}
	return c, nil
}

func (s *Snapshot) Replace(storefront string, products []domainCatalog.Product) error {
	c, err := domainCatalog.NewCatalog(products)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.catalogs[storefront] = c
	s.mu.Unlock()
	return nil
}
