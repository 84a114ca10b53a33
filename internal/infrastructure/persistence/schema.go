package persistence

import (
	"context"
	"fmt"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"gorm.io/gorm"
)

// Models lists every persisted type, parents before children.
func Models() []any {
	return []any{
		&catalog.Dish{},
		&catalog.SizeRule{},
		&catalog.DishSizePrice{},
		&catalog.Ingredient{},
		&catalog.RequirementEdge{},
		&catalog.IncompatibilityEdge{},
		&identity.User{},
		&ordering.Order{},
		&ordering.OrderLine{},
	}
}

// AutoMigrate creates the schema from the models. It backs the SQLite
// driver, which the SQL migrations in migrations/ do not target.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// SeedCatalog inserts the default menu when the catalog is empty. The
// same rows are shipped for PostgreSQL in migrations/000002_seed_catalog.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&catalog.Dish{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count dishes: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := DefaultCatalog()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&seed.Dishes).Error; err != nil {
			return fmt.Errorf("seed dishes: %w", err)
		}
		if err := tx.Create(&seed.Sizes).Error; err != nil {
			return fmt.Errorf("seed sizes: %w", err)
		}
		if err := tx.Create(&seed.Ingredients).Error; err != nil {
			return fmt.Errorf("seed ingredients: %w", err)
		}
		if len(seed.Requirements) > 0 {
			if err := tx.Create(&seed.Requirements).Error; err != nil {
				return fmt.Errorf("seed requirements: %w", err)
			}
		}
		if len(seed.Incompatibilities) > 0 {
			if err := tx.Create(&seed.Incompatibilities).Error; err != nil {
				return fmt.Errorf("seed incompatibilities: %w", err)
			}
		}
		return nil
	})
}
