package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Validator checks an order configuration against the catalog and the
// constraint graph. It never stops at the first problem: every violation
// is collected so the customer can fix them in one go.
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// checked is a validation outcome together with the catalog rows it was
// computed from, so a submission can reuse them.
type checked struct {
	result      *ValidationResult
	dish        *catalog.Dish
	distinct    []uint
	quantities  map[uint]int
	ingredients map[uint]catalog.Ingredient
}

// Validate runs every business rule against repo
func (v *Validator) Validate(ctx context.Context, repo catalog.Repository, req ValidateOrderRequest) (*ValidationResult, error) {
	c, err := v.check(ctx, repo, req)
	if err != nil {
		return nil, err
	}
	return c.result, nil
}

func (v *Validator) check(ctx context.Context, repo catalog.Repository, req ValidateOrderRequest) (*checked, error) {
	var errs []string
	c := &checked{}

	dish, err := repo.FindDish(ctx, req.DishID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		errs = append(errs, "Invalid dish selected")
	case err != nil:
		return nil, fmt.Errorf("load dish: %w", err)
	default:
		c.dish = dish
	}

	var rule *catalog.SizeRule
	if req.Size.IsValid() {
		rule, err = repo.FindSizeRule(ctx, req.Size)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("load size rule: %w", err)
		}
	}
	if rule == nil {
		errs = append(errs, "Invalid size selected")
	} else if !rule.Allows(len(req.IngredientIDs)) {
		errs = append(errs, fmt.Sprintf("Too many ingredients for %s size (max %d)", rule.Size, rule.MaxIngredients))
	}

	c.distinct, c.quantities = ordering.GroupQuantities(req.IngredientIDs)
	found, err := repo.FindIngredientsByIDs(ctx, c.distinct)
	if err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	c.ingredients = make(map[uint]catalog.Ingredient, len(found))
	for _, ing := range found {
		c.ingredients[ing.ID] = ing
	}

	known := make([]uint, 0, len(c.distinct))
	for _, id := range c.distinct {
		if _, ok := c.ingredients[id]; !ok {
			errs = append(errs, fmt.Sprintf("Invalid ingredient with ID %d", id))
			continue
		}
		known = append(known, id)
	}

	for _, id := range known {
		ing := c.ingredients[id]
		if !ing.CanServe(c.quantities[id]) {
			errs = append(errs, notEnoughMessage(ing, c.quantities[id]))
		}
	}

	if len(known) > 0 {
		graph, err := repo.LoadConstraintGraph(ctx)
		if err != nil {
			return nil, fmt.Errorf("load constraint graph: %w", err)
		}
		for _, miss := range graph.MissingRequirements(known) {
			errs = append(errs, fmt.Sprintf("%s requires %s", graph.Name(miss.Ingredient), graph.Name(miss.Other)))
		}
		for _, conflict := range graph.Conflicts(known) {
			errs = append(errs, fmt.Sprintf("%s is incompatible with %s", graph.Name(conflict.Ingredient), graph.Name(conflict.Other)))
		}
	}

	c.result = &ValidationResult{Valid: len(errs) == 0, Errors: errs}
	if !c.result.Valid {
		return c, nil
	}

	total, err := v.price(ctx, repo, c, rule)
	if err != nil {
		return nil, err
	}
	c.result.TotalPrice = &total
	return c, nil
}

// price is the dish/size base price plus every portion's unit price
func (v *Validator) price(ctx context.Context, repo catalog.Repository, c *checked, rule *catalog.SizeRule) (decimal.Decimal, error) {
	base := rule.BasePrice
	override, err := repo.FindDishSizePrice(ctx, c.dish.ID, rule.Size)
	switch {
	case err == nil:
		base = override.BasePrice
	case !errors.Is(err, shared.ErrNotFound):
		return decimal.Zero, fmt.Errorf("load dish price: %w", err)
	}

	total := base
	for _, id := range c.distinct {
		ing := c.ingredients[id]
		total = total.Add(ing.LineCost(c.quantities[id]))
	}
	return catalog.RoundPrice(total), nil
}

func notEnoughMessage(ing catalog.Ingredient, requested int) string {
	return fmt.Sprintf("Not enough %s available (requested: %d, available: %d)", ing.Name, requested, ing.Available())
}
