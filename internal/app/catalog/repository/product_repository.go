package repository

import (
	"context"
	"errors"

	"pscosmeticos/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает товар вместе со связями тегов и ингредиентов.
// gorm выполняет вставку товара и join-строк в одной транзакции.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).
		Omit("Category", "SubCategory").
		Create(product)
	return result.Error
}

// GetByID получает товар со всеми связями
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("Tags").
		Preload("Ingredients").
		First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// List возвращает страницу товаров, при непустом categoryName
// фильтрует по имени категории без учёта регистра
func (r *productRepository) List(ctx context.Context, categoryName string, page, size int) ([]entity.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if categoryName != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) = LOWER(?)", categoryName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []entity.Product
	result := query.
		Preload("Category").
		Preload("SubCategory").
		Preload("Tags").
		Preload("Ingredients").
		Order("products.created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&products)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return products, total, nil
}

// Update сохраняет поля товара и заменяет наборы тегов и ингредиентов.
// Колонки и join-таблицы обновляются в одной транзакции.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
			"name":                 product.Name,
			"slug":                 product.Slug,
			"image_url":            product.ImageURL,
			"category_id":          product.CategoryID,
			"sub_category_id":      product.SubCategoryID,
			"price":                product.Price,
			"discount_price":       product.DiscountPrice,
			"multi_color":          product.MultiColor,
			"description":          product.Description,
			"complete_description": product.CompleteDescription,
			"how_to_use":           product.HowToUse,
			"active":               product.Active,
			"updated_at":           product.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if err := tx.Model(product).Association("Tags").Replace(product.Tags); err != nil {
			return err
		}
		if err := tx.Model(product).Association("Ingredients").Replace(product.Ingredients); err != nil {
			return err
		}

		return nil
	})
}

// Delete удаляет товар вместе с join-строками тегов и ингредиентов
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product := entity.Product{ID: id}
		if err := tx.Model(&product).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Ingredients").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&entity.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		return nil
	})
}

// CountByCategory возвращает количество товаров внутри категории
func (r *productRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
