package handlers

import (
	"net/http"

	"github.com/yuzvak/herbal-storefront/internal/application/ports"
	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/domain/errors"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/response"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
	"github.com/yuzvak/herbal-storefront/internal/presentation/view"
)

type ProductHandler struct {
	carts    *use_cases.CartService
	catalogs ports.CatalogProvider
	log      *logger.Logger
}

func NewProductHandler(carts *use_cases.CartService, catalogs ports.CatalogProvider, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		carts:    carts,
		catalogs: catalogs,
		log:      log,
	}
}

func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	sf, err := h.carts.Storefront(session(r).Storefront)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	products, err := h.catalogs.Catalog(r.Context(), sf.Key)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, view.RenderProducts(products.Products(), sf.Currency))
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		response.WriteDomainError(w, errors.ErrProductNotFound)
		return
	}

	sf, err := h.carts.Storefront(session(r).Storefront)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	products, err := h.catalogs.Catalog(r.Context(), sf.Key)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	product, found := products.Find(id)
	if !found {
		response.WriteDomainError(w, errors.ErrProductNotFound)
		return
	}

	response.WriteSuccess(w, view.RenderProduct(product, sf.Currency))
}
