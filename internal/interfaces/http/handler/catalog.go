package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/sannaclaudia/WebAPP/internal/application/catalog"
)

// CatalogReader is the read side of the catalog
type CatalogReader interface {
	ListDishes(ctx context.Context) ([]appcatalog.DishResponse, error)
	ListIngredients(ctx context.Context) ([]appcatalog.IngredientResponse, error)
	Pricing(ctx context.Context) (*appcatalog.PricingResponse, error)
}

// CatalogHandler serves the public menu endpoints
type CatalogHandler struct {
	BaseHandler
	catalog CatalogReader
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListDishes handles GET /api/dishes
func (h *CatalogHandler) ListDishes(c *gin.Context) {
	dishes, err := h.catalog.ListDishes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dishes)
}

// ListIngredients handles GET /api/ingredients
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.catalog.ListIngredients(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ingredients)
}

// Pricing handles GET /api/pricing
func (h *CatalogHandler) Pricing(c *gin.Context) {
	pricing, err := h.catalog.Pricing(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pricing)
}
