package cart

import (
	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	domainErrors "github.com/yuzvak/herbal-storefront/internal/domain/errors"
)

type LineItem struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Images   []string `json:"images"`
	Quantity int      `json:"quantity"`
}

func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

func (li LineItem) clone() LineItem {
	images := make([]string, len(li.Images))
	copy(images, li.Images)
	li.Images = images
	return li
}

// Cart is a value: every operation returns a new Cart and leaves the receiver untouched.
// Items are unique by id, keep insertion order, and always have Quantity >= 1.
type Cart struct {
	items []LineItem
}

// New builds a cart from raw line items, merging repeated ids into the first
// occurrence and dropping non-positive quantities.
func New(items ...LineItem) Cart {
	var c Cart
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if i := c.indexOf(item.ID); i >= 0 {
			c.items[i].Quantity += item.Quantity
			continue
		}
		c.items = append(c.items, item.clone())
	}
	return c
}

func (c Cart) Items() []LineItem {
	out := make([]LineItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.clone())
	}
	return out
}

func (c Cart) Find(productID int64) (LineItem, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return LineItem{}, false
	}
	return c.items[i].clone(), true
}

func (c Cart) Len() int {
	return len(c.items)
}

func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Add increments an existing line or appends a new one at the end.
func (c Cart) Add(product catalog.Product, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, domainErrors.ErrInvalidQuantity
	}

	next := c.copy()
	if i := next.indexOf(product.ID); i >= 0 {
		next.items[i].Quantity += quantity
		return next, nil
	}

	next.items = append(next.items, LineItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Images:   product.Images,
		Quantity: quantity,
	}.clone())
	return next, nil
}

// Remove is idempotent.
func (c Cart) Remove(productID int64) Cart {
	i := c.indexOf(productID)
	if i < 0 {
		return c
	}

	next := Cart{items: make([]LineItem, 0, len(c.items)-1)}
	next.items = append(next.items, c.items[:i]...)
	next.items = append(next.items, c.items[i+1:]...)
	return next
}

// UpdateQuantity clamps at zero and removes the line when the result is zero.
// Unknown ids leave the cart unchanged.
func (c Cart) UpdateQuantity(productID int64, quantity int) Cart {
	i := c.indexOf(productID)
	if i < 0 {
		return c
	}

	if quantity <= 0 {
		return c.Remove(productID)
	}

	next := c.copy()
	next.items[i].Quantity = quantity
	return next
}

func (c Cart) Clear() Cart {
	return Cart{}
}

func (c Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c Cart) indexOf(productID int64) int {
	for i, item := range c.items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) copy() Cart {
	next := Cart{items: make([]LineItem, len(c.items))}
	copy(next.items, c.items)
	return next
}
