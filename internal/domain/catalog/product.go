package catalog

import (
	"errors"
	"fmt"
)

type Product struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Price       float64  `json:"price" yaml:"price"`
	Images      []string `json:"images" yaml:"images"`
	Description string   `json:"description,omitempty" yaml:"description"`
}

func NewProduct(id int64, name string, price float64, images []string) (*Product, error) {
	p := &Product{
		ID:     id,
		Name:   name,
		Price:  price,
		Images: images,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p.ID <= 0 {
		return errors.New("product id must be positive")
	}

	if p.Name == "" {
		return errors.New("product name cannot be empty")
	}

	if p.Price < 0 {
		return errors.New("product price cannot be negative")
	}

	return nil
}

func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Catalog is an immutable, ordered product list indexed by id.
type Catalog struct {
	products []Product
	index    map[int64]int
}

func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[int64]int, len(products)),
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p.clone())
	}

	return c, nil
}

// Find is an optional-result lookup; callers decide whether a miss matters.
func (c *Catalog) Find(id int64) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i].clone(), true
}

func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.clone())
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

func (p Product) clone() Product {
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	p.Images = images
	return p
}
