package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/monitoring"
)

// CatalogRepository reads storefront products. The service never writes
// to the table.
type CatalogRepository struct {
	conn *Connection
}

func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{conn: conn}
}

func (r *CatalogRepository) ListProducts(ctx context.Context, storefront string) ([]catalog.Product, error) {
	query := `
		SELECT id, name, price, images, description
		FROM products
		WHERE storefront = $1 AND active = true
		ORDER BY position, id
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.conn.GetDB(), "SELECT", "products", query, storefront)
	if err != nil {
		return nil, fmt.Errorf("list products for %s: %w", storefront, err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var (
			id          int64
			name        string
			price       float64
			images      []string
			description sql.NullString
		)
		if err := rows.Scan(&id, &name, &price, pq.Array(&images), &description); err != nil {
			return nil, err
		}

		p, err := catalog.NewProduct(id, name, price, images)
		if err != nil {
			return nil, fmt.Errorf("product %d for %s: %w", id, storefront, err)
		}
		p.Description = description.String
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
