package storefront

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	domainErrors "github.com/yuzvak/herbal-storefront/internal/domain/errors"
)

const (
	DefaultCurrency        = "₹"
	DefaultMessagingDomain = "wa.me"
	DefaultMinQuantity     = 1
	DefaultMaxQuantity     = 10
	DefaultQuickOrderNotes = "I would like to place an order. Please confirm availability and delivery time."
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type Contact struct {
	Phone           string `json:"phone" yaml:"phone"`
	Email           string `json:"email,omitempty" yaml:"email"`
	MessagingDomain string `json:"messaging_domain" yaml:"messaging_domain"`
	EmailSubject    string `json:"email_subject,omitempty" yaml:"email_subject"`
	EmailBody       string `json:"email_body,omitempty" yaml:"email_body"`
}

type QuickOrder struct {
	ProductID   int64  `json:"product_id" yaml:"product_id"`
	MinQuantity int    `json:"min_quantity" yaml:"min_quantity"`
	MaxQuantity int    `json:"max_quantity" yaml:"max_quantity"`
	Notes       string `json:"notes,omitempty" yaml:"notes"`
}

func (q *QuickOrder) Enabled() bool {
	return q != nil && q.ProductID > 0
}

// Clamp bounds a requested quantity to the selector range.
func (q *QuickOrder) Clamp(quantity int) int {
	if quantity < q.MinQuantity {
		return q.MinQuantity
	}
	if quantity > q.MaxQuantity {
		return q.MaxQuantity
	}
	return quantity
}

// Storefront is one branded variant of the landing page.
type Storefront struct {
	Key                    string            `json:"key" yaml:"key"`
	Brand                  string            `json:"brand" yaml:"brand"`
	ProductTitle           string            `json:"product_title" yaml:"product_title"`
	StorageKey             string            `json:"storage_key" yaml:"storage_key"`
	Currency               string            `json:"currency" yaml:"currency"`
	Contact                Contact           `json:"contact" yaml:"contact"`
	RequireCustomerDetails bool              `json:"require_customer_details" yaml:"require_customer_details"`
	QuickOrder             *QuickOrder       `json:"quick_order,omitempty" yaml:"quick_order"`
	Products               []catalog.Product `json:"products" yaml:"products"`
}

// Normalize fills defaults for optional fields.
func (s *Storefront) Normalize() {
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.Contact.MessagingDomain == "" {
		s.Contact.MessagingDomain = DefaultMessagingDomain
	}
	if s.StorageKey == "" {
		s.StorageKey = strings.ReplaceAll(s.Key, "-", "_") + "_cart"
	}
	if s.ProductTitle == "" {
		s.ProductTitle = s.Brand
	}
	if s.Contact.EmailSubject == "" {
		s.Contact.EmailSubject = s.Brand + " Inquiry"
	}
	if s.Contact.EmailBody == "" {
		s.Contact.EmailBody = fmt.Sprintf("Hello,\n\nI am interested in %s. Please contact me with more information.\n\nThank you.", s.Brand)
	}
	if s.QuickOrder != nil {
		if s.QuickOrder.MinQuantity <= 0 {
			s.QuickOrder.MinQuantity = DefaultMinQuantity
		}
		if s.QuickOrder.MaxQuantity <= 0 {
			s.QuickOrder.MaxQuantity = DefaultMaxQuantity
		}
		if s.QuickOrder.Notes == "" {
			s.QuickOrder.Notes = DefaultQuickOrderNotes
		}
	}
}

func (s *Storefront) Validate() error {
	if !keyPattern.MatchString(s.Key) {
		return fmt.Errorf("invalid storefront key %q", s.Key)
	}

	if s.Brand == "" {
		return errors.New("brand cannot be empty")
	}

	if s.StorageKey == "" {
		return errors.New("storage key cannot be empty")
	}

	if s.Contact.Phone == "" || strings.Trim(s.Contact.Phone, "0123456789") != "" {
		return fmt.Errorf("contact phone %q must be digits only", s.Contact.Phone)
	}

	if s.QuickOrder != nil && s.QuickOrder.MinQuantity > s.QuickOrder.MaxQuantity {
		return errors.New("quick order min quantity exceeds max quantity")
	}

	return nil
}

// Registry holds the configured storefronts by key.
type Registry struct {
	storefronts map[string]*Storefront
}

func NewRegistry(storefronts []Storefront) (*Registry, error) {
	r := &Registry{storefronts: make(map[string]*Storefront, len(storefronts))}
	storageKeys := make(map[string]string, len(storefronts))

	for i := range storefronts {
		sf := storefronts[i]
		sf.Normalize()
		if err := sf.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.storefronts[sf.Key]; dup {
			return nil, fmt.Errorf("duplicate storefront %q", sf.Key)
		}
		if other, dup := storageKeys[sf.StorageKey]; dup {
			return nil, fmt.Errorf("storefronts %q and %q share storage key %q", other, sf.Key, sf.StorageKey)
		}
		storageKeys[sf.StorageKey] = sf.Key
		r.storefronts[sf.Key] = &sf
	}

	return r, nil
}

func (r *Registry) Get(key string) (*Storefront, error) {
	sf, ok := r.storefronts[key]
	if !ok {
		return nil, domainErrors.ErrStorefrontNotFound
	}
	return sf, nil
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.storefronts))
	for k := range r.storefronts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
