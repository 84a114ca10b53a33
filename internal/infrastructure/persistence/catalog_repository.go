package persistence

import (
	"context"
	"errors"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCatalogRepository implements catalog.Repository and
// catalog.StockRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ListDishes returns all dishes ordered by name
func (r *GormCatalogRepository) ListDishes(ctx context.Context) ([]catalog.Dish, error) {
	var dishes []catalog.Dish
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// FindDish finds a dish by ID
func (r *GormCatalogRepository) FindDish(ctx context.Context, id uint) (*catalog.Dish, error) {
	var dish catalog.Dish
	if err := r.db.WithContext(ctx).First(&dish, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dish, nil
}

// ListSizeRules returns the size table in menu order (Small, Medium, Large)
func (r *GormCatalogRepository) ListSizeRules(ctx context.Context) ([]catalog.SizeRule, error) {
	var rules []catalog.SizeRule
	if err := r.db.WithContext(ctx).Order("base_price ASC").Find(&rules).Error; err != nil {
		return nil, err
	}

	byName := make(map[catalog.Size]catalog.SizeRule, len(rules))
	for _, rule := range rules {
		byName[rule.Size] = rule
	}
	ordered := make([]catalog.SizeRule, 0, len(rules))
	for _, size := range catalog.AllSizes {
		if rule, ok := byName[size]; ok {
			ordered = append(ordered, rule)
		}
	}
	return ordered, nil
}

// FindSizeRule returns the rule for a size
func (r *GormCatalogRepository) FindSizeRule(ctx context.Context, size catalog.Size) (*catalog.SizeRule, error) {
	var rule catalog.SizeRule
	if err := r.db.WithContext(ctx).First(&rule, "size = ?", size).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindDishSizePrice returns the base price override for a dish and size
func (r *GormCatalogRepository) FindDishSizePrice(ctx context.Context, dishID uint, size catalog.Size) (*catalog.DishSizePrice, error) {
	var price catalog.DishSizePrice
	if err := r.db.WithContext(ctx).
		Where("dish_id = ? AND size = ?", dishID, size).
		First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// ListIngredients returns all ingredients ordered by name
func (r *GormCatalogRepository) ListIngredients(ctx context.Context) ([]catalog.Ingredient, error) {
	var ingredients []catalog.Ingredient
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindIngredientsByIDs returns the ingredients among ids that exist
func (r *GormCatalogRepository) FindIngredientsByIDs(ctx context.Context, ids []uint) ([]catalog.Ingredient, error) {
	if len(ids) == 0 {
		return []catalog.Ingredient{}, nil
	}
	var ingredients []catalog.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// LoadConstraintGraph reads every ingredient and edge and indexes them
func (r *GormCatalogRepository) LoadConstraintGraph(ctx context.Context) (*catalog.ConstraintGraph, error) {
	var (
		ingredients       []catalog.Ingredient
		requirements      []catalog.RequirementEdge
		incompatibilities []catalog.IncompatibilityEdge
	)
	db := r.db.WithContext(ctx)
	if err := db.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&requirements).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&incompatibilities).Error; err != nil {
		return nil, err
	}
	return catalog.NewConstraintGraph(ingredients, requirements, incompatibilities), nil
}

// DecrementPortions takes quantity portions in one conditional UPDATE.
// The row only matches while enough portions remain, so two transactions
// racing for the last portions cannot both succeed. Unlimited rows match
// and stay NULL.
func (r *GormCatalogRepository) DecrementPortions(ctx context.Context, ingredientID uint, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Ingredient{}).
		Where("id = ? AND (available_portions IS NULL OR available_portions >= ?)", ingredientID, quantity).
		UpdateColumn("available_portions", gorm.Expr("available_portions - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrStockConflict
	}
	return nil
}

// RestorePortions gives quantity portions back to a limited ingredient
func (r *GormCatalogRepository) RestorePortions(ctx context.Context, ingredientID uint, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&catalog.Ingredient{}).
		Where("id = ? AND available_portions IS NOT NULL", ingredientID).
		UpdateColumn("available_portions", gorm.Expr("available_portions + ?", quantity)).
		Error
}

// Ensure GormCatalogRepository implements the catalog interfaces
var (
	_ catalog.Repository      = (*GormCatalogRepository)(nil)
	_ catalog.StockRepository = (*GormCatalogRepository)(nil)
)
