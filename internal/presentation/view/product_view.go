package view

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

	descriptionPolicy = newDescriptionPolicy()
)

type ProductView struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	PriceDisplay    string   `json:"price_display"`
	Images          []string `json:"images"`
	Image           string   `json:"image,omitempty"`
	DescriptionHTML string   `json:"description_html,omitempty"`
}

func RenderProduct(p catalog.Product, currency string) ProductView {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		PriceDisplay:    FormatMoney(currency, p.Price),
		Images:          images,
		Image:           p.PrimaryImage(),
		DescriptionHTML: RenderDescription(p.Description),
	}
}

func RenderProducts(products []catalog.Product, currency string) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, RenderProduct(p, currency))
	}
	return out
}

// RenderDescription converts catalog markdown to HTML and strips anything
// outside the description policy. Conversion errors yield an empty string.
func RenderDescription(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return strings.TrimSpace(descriptionPolicy.Sanitize(buf.String()))
}

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
