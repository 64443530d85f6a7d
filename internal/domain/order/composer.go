package order

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	domainErrors "github.com/yuzvak/herbal-storefront/internal/domain/errors"
	"github.com/yuzvak/herbal-storefront/internal/domain/storefront"
)

// Composer turns order requests into message text and contact deep links
// for one storefront. It holds no state beyond the storefront settings.
type Composer struct {
	sf *storefront.Storefront
}

func NewComposer(sf *storefront.Storefront) *Composer {
	return &Composer{sf: sf}
}

// FormatAmount prints whole amounts without decimals and others with two.
func FormatAmount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// EncodeText percent-encodes s for a query value, spaces as %20.
func EncodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (c *Composer) Price(v float64) string {
	return c.sf.Currency + FormatAmount(v)
}

// Summary renders one "<name> (<quantity> × <currency><price>)" line per item.
func (c *Composer) Summary(items []cart.LineItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%d × %s)", item.Name, item.Quantity, c.Price(item.Price)))
	}
	return strings.Join(lines, "\n")
}

func (c *Composer) Message(req *Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New Order - %s*\n\n", c.sf.Brand)
	if req.Reference != "" {
		fmt.Fprintf(&b, "*Order Reference:* %s\n\n", req.Reference)
	}

	if req.Customer != nil {
		b.WriteString("*Customer Details:*\n")
		fmt.Fprintf(&b, "Name: %s\n", req.Customer.Name)
		fmt.Fprintf(&b, "Phone: %s\n", req.Customer.Phone)
		fmt.Fprintf(&b, "Address: %s\n\n", req.Customer.Address)
	}

	if req.Kind == KindQuick && len(req.Items) == 1 {
		item := req.Items[0]
		b.WriteString("*Order Details:*\n")
		fmt.Fprintf(&b, "Product: %s\n", c.sf.ProductTitle)
		fmt.Fprintf(&b, "Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "Price: %s each\n", c.Price(item.Price))
		fmt.Fprintf(&b, "Total: %s", c.Price(req.Total))
	} else {
		b.WriteString("*Order Summary:*\n")
		b.WriteString(c.Summary(req.Items))
		fmt.Fprintf(&b, "\nProduct: %s\n\n", c.sf.ProductTitle)
		fmt.Fprintf(&b, "*Total: %s*", c.Price(req.Total))
	}

	if req.Customer == nil {
		b.WriteString("\n\n*Please provide shipping details:*\nName:\nAddress:\nPhone:\nPincode:")
	}

	if req.Notes != "" {
		fmt.Fprintf(&b, "\n\n*Additional Notes:*\n%s", req.Notes)
	}

	return b.String()
}

// MessagingURL is https://<domain>/<phone>?text=<encoded message>.
func (c *Composer) MessagingURL(req *Request) string {
	return fmt.Sprintf("https://%s/%s?text=%s",
		c.sf.Contact.MessagingDomain, c.sf.Contact.Phone, EncodeText(c.Message(req)))
}

func (c *Composer) TelURI() string {
	return "tel:+" + c.sf.Contact.Phone
}

func (c *Composer) MailtoURI() (string, error) {
	if c.sf.Contact.Email == "" {
		return "", domainErrors.ErrContactUnavailable
	}
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		c.sf.Contact.Email, EncodeText(c.sf.Contact.EmailSubject), EncodeText(c.sf.Contact.EmailBody)), nil
}

type Quote struct {
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	MaxQuantity int     `json:"max_quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// NewQuote clamps the requested quantity into the quick order range and prices it.
func NewQuote(product catalog.Product, qo *storefront.QuickOrder, requested int) (Quote, error) {
	if !qo.Enabled() {
		return Quote{}, domainErrors.ErrQuickOrderDisabled
	}

	quantity := qo.Clamp(requested)
	return Quote{
		ProductID:   product.ID,
		Quantity:    quantity,
		MinQuantity: qo.MinQuantity,
		MaxQuantity: qo.MaxQuantity,
		UnitPrice:   product.Price,
		Total:       product.Price * float64(quantity),
	}, nil
}
