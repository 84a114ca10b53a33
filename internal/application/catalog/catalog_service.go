package catalog

import (
	"context"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
)

// CatalogService serves the read-only menu
type CatalogService struct {
	repo catalog.Repository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo catalog.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListDishes returns every dish
func (s *CatalogService) ListDishes(ctx context.Context) ([]DishResponse, error) {
	dishes, err := s.repo.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, DishResponse{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// ListIngredients returns every ingredient with the ingredients it
// requires and the ones it cannot be combined with
func (s *CatalogService) ListIngredients(ctx context.Context) ([]IngredientResponse, error) {
	ingredients, err := s.repo.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	graph, err := s.repo.LoadConstraintGraph(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, IngredientResponse{
			ID:                ing.ID,
			Name:              ing.Name,
			Price:             catalog.RoundPrice(ing.Price).InexactFloat64(),
			AvailablePortions: ing.AvailablePortions,
			Requires:          refs(graph, graph.Requires(ing.ID)),
			IncompatibleWith:  refs(graph, graph.IncompatibleWith(ing.ID)),
		})
	}
	return out, nil
}

func refs(graph *catalog.ConstraintGraph, ids []uint) []IngredientRef {
	out := make([]IngredientRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, IngredientRef{ID: id, Name: graph.Name(id)})
	}
	return out
}

// Pricing returns base price and ingredient limit per size
func (s *CatalogService) Pricing(ctx context.Context) (*PricingResponse, error) {
	rules, err := s.repo.ListSizeRules(ctx)
	if err != nil {
		return nil, err
	}
	resp := &PricingResponse{
		Prices:         make(map[string]float64, len(rules)),
		MaxIngredients: make(map[string]int, len(rules)),
	}
	for _, r := range rules {
		resp.Prices[r.Size.String()] = catalog.RoundPrice(r.BasePrice).InexactFloat64()
		resp.MaxIngredients[r.Size.String()] = r.MaxIngredients
	}
	return resp, nil
}
