package repository

import (
	"context"
	"errors"

	"pscosmeticos/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create создает новую категорию
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).Create(category)
	return result.Error
}

// GetByID получает категорию по ID
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	result := r.db.WithContext(ctx).First(&category, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	return &category, nil
}

// List возвращает страницу категорий и общее их количество
func (r *categoryRepository) List(ctx context.Context, page, size int) ([]entity.Category, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []entity.Category
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&categories)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return categories, total, nil
}

// Update обновляет категорию
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).Model(category).Where("id = ?", category.ID).Updates(map[string]interface{}{
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
		"image_url":   category.ImageURL,
		"active":      category.Active,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Delete удаляет категорию
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// IncrementTotalProducts атомарно сдвигает счётчик товаров категории
func (r *categoryRepository) IncrementTotalProducts(ctx context.Context, id uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("id = ?", id).
		UpdateColumn("total_products", gorm.Expr("total_products + ?", delta))

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// SyncTotalProducts пересчитывает счётчики всех категорий по таблице товаров.
// Вызывается планировщиком для устранения дрейфа после сбоев.
func (r *categoryRepository) SyncTotalProducts(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE categories
		 SET total_products = (
		   SELECT COUNT(*) FROM products WHERE products.category_id = categories.id
		 )`,
	).Error
}
