package repository

import (
	"context"
	"errors"

	"pscosmeticos/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type subCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository создает новый репозиторий подкатегорий
func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

// Create создает новую подкатегорию
func (r *subCategoryRepository) Create(ctx context.Context, subCategory *entity.SubCategory) error {
	result := r.db.WithContext(ctx).Omit("Category").Create(subCategory)
	return result.Error
}

// GetByID получает подкатегорию по ID
func (r *subCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SubCategory, error) {
	var subCategory entity.SubCategory
	result := r.db.WithContext(ctx).Preload("Category").First(&subCategory, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubCategoryNotFound
		}
		return nil, result.Error
	}

	return &subCategory, nil
}

// GetByIDAndCategory получает подкатегорию, проверяя её принадлежность категории
func (r *subCategoryRepository) GetByIDAndCategory(ctx context.Context, id, categoryID uuid.UUID) (*entity.SubCategory, error) {
	var subCategory entity.SubCategory
	result := r.db.WithContext(ctx).
		First(&subCategory, "id = ? AND category_id = ?", id, categoryID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubCategoryNotFound
		}
		return nil, result.Error
	}

	return &subCategory, nil
}

// List возвращает страницу подкатегорий с родительскими категориями
func (r *subCategoryRepository) List(ctx context.Context, page, size int) ([]entity.SubCategory, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.SubCategory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subCategories []entity.SubCategory
	result := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&subCategories)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return subCategories, total, nil
}

// ListByCategory возвращает все подкатегории указанной категории
func (r *subCategoryRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.SubCategory, error) {
	var subCategories []entity.SubCategory
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subCategories)

	if result.Error != nil {
		return nil, result.Error
	}

	return subCategories, nil
}
