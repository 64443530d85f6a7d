package order

import (
	"time"

	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	domainErrors "github.com/yuzvak/herbal-storefront/internal/domain/errors"
)

type Kind string

const (
	KindCart  Kind = "cart"
	KindQuick Kind = "quick"
)

// Request is built at checkout, rendered once into a deep link and discarded.
type Request struct {
	Kind      Kind
	Reference string
	Customer  *CustomerDetails
	Items     []cart.LineItem
	Total     float64
	Notes     string
	CreatedAt time.Time
}

// NewCartRequest snapshots a non-empty cart. A nil or blank customer means
// the message asks the buyer for shipping details instead.
func NewCartRequest(reference string, c cart.Cart, customer *CustomerDetails, now time.Time) (*Request, error) {
	if c.IsEmpty() {
		return nil, domainErrors.ErrEmptyCart
	}

	return &Request{
		Kind:      KindCart,
		Reference: reference,
		Customer:  normalizeCustomer(customer),
		Items:     c.Items(),
		Total:     c.Total(),
		CreatedAt: now,
	}, nil
}

func NewQuickRequest(reference string, product catalog.Product, quantity int, customer *CustomerDetails, notes string, now time.Time) (*Request, error) {
	single, err := cart.Cart{}.Add(product, quantity)
	if err != nil {
		return nil, err
	}

	return &Request{
		Kind:      KindQuick,
		Reference: reference,
		Customer:  normalizeCustomer(customer),
		Items:     single.Items(),
		Total:     single.Total(),
		Notes:     notes,
		CreatedAt: now,
	}, nil
}

func (r *Request) ItemCount() int {
	count := 0
	for _, item := range r.Items {
		count += item.Quantity
	}
	return count
}

func normalizeCustomer(customer *CustomerDetails) *CustomerDetails {
	if customer == nil {
		return nil
	}
	clean := customer.Sanitized()
	if clean.IsBlank() {
		return nil
	}
	clean = clean.WithDefaults()
	return &clean
}
