package ports

import (
	"context"

	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
)

type CatalogProvider interface {
	Catalog(ctx context.Context, storefront string) (*catalog.Catalog, error)
}

type CatalogRepository interface {
	ListProducts(ctx context.Context, storefront string) ([]catalog.Product, error)
}
