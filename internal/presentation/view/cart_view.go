package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yuzvak/herbal-storefront/internal/domain/cart"
	"github.com/yuzvak/herbal-storefront/internal/domain/storefront"
)

var printer = message.NewPrinter(language.English)

type LineView struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Image           string  `json:"image,omitempty"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	Subtotal        float64 `json:"subtotal"`
	PriceDisplay    string  `json:"price_display"`
	SubtotalDisplay string  `json:"subtotal_display"`
}

// CartViewModel is everything a page needs to draw the cart badge and modal.
type CartViewModel struct {
	Storefront   string     `json:"storefront"`
	Brand        string     `json:"brand"`
	Currency     string     `json:"currency"`
	Items        []LineView `json:"items"`
	ItemCount    int        `json:"item_count"`
	Total        float64    `json:"total"`
	TotalDisplay string     `json:"total_display"`
	Empty        bool       `json:"empty"`
	// BadgeVisible mirrors the header counter, hidden at zero.
	BadgeVisible bool `json:"badge_visible"`
}

func Render(c cart.Cart, sf *storefront.Storefront) CartViewModel {
	currency := sf.Currency
	if currency == "" {
		currency = storefront.DefaultCurrency
	}

	items := c.Items()
	vm := CartViewModel{
		Storefront: sf.Key,
		Brand:      sf.Brand,
		Currency:   currency,
		Items:      make([]LineView, 0, len(items)),
		ItemCount:  c.ItemCount(),
		Total:      c.Total(),
		Empty:      c.IsEmpty(),
	}

	for _, item := range items {
		line := LineView{
			ID:              item.ID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			Price:           item.Price,
			Subtotal:        item.Subtotal(),
			PriceDisplay:    FormatMoney(currency, item.Price),
			SubtotalDisplay: FormatMoney(currency, item.Subtotal()),
		}
		if len(item.Images) > 0 {
			line.Image = item.Images[0]
		}
		vm.Items = append(vm.Items, line)
	}

	vm.TotalDisplay = FormatMoney(currency, vm.Total)
	vm.BadgeVisible = vm.ItemCount > 0
	return vm
}

// FormatMoney renders two decimals with grouping, e.g. "₹1,436.00".
func FormatMoney(currency string, amount float64) string {
	return currency + printer.Sprintf("%.2f", amount)
}
