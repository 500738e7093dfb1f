// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/outbound"
)

// CatalogRepository implements the recipe catalog interface using GORM
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) outbound.RecipeCatalog {
	return &CatalogRepository{db: db}
}

// FetchAll loads the whole catalog with ingredients and equipment in one
// query per association. Only recipes with computed calories qualify; the
// calorie ordering matches how the in-memory index sorts its buckets.
func (r *CatalogRepository) FetchAll(ctx context.Context) ([]recipe.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Equipment").
		Where("total_calories IS NOT NULL").
		Order("total_calories ASC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}

	return recipes, nil
}
