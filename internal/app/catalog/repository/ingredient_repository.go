package repository

import (
	"context"
	"errors"

	"pscosmeticos/internal/app/catalog/entity"

	"gorm.io/gorm"
)

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository создает новый репозиторий ингредиентов
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// FindByNameIgnoreCase ищет ингредиент по имени без учёта регистра
func (r *ingredientRepository) FindByNameIgnoreCase(ctx context.Context, name string) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	result := r.db.WithContext(ctx).First(&ingredient, "LOWER(name) = LOWER(?)", name)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, result.Error
	}

	return &ingredient, nil
}

// Create создает новый ингредиент
func (r *ingredientRepository) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	result := r.db.WithContext(ctx).Create(ingredient)
	return result.Error
}
