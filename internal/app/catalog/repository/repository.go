package repository

import (
	"context"
	"errors"

	"pscosmeticos/internal/app/catalog/entity"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("sub-category not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrUserNotFound        = errors.New("user not found")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context, page, size int) ([]entity.Category, int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementTotalProducts(ctx context.Context, id uuid.UUID, delta int) error
	SyncTotalProducts(ctx context.Context) error
}

type SubCategoryRepository interface {
	Create(ctx context.Context, subCategory *entity.SubCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SubCategory, error)
	// GetByIDAndCategory возвращает подкатегорию только если она
	// принадлежит указанной категории
	GetByIDAndCategory(ctx context.Context, id, categoryID uuid.UUID) (*entity.SubCategory, error)
	List(ctx context.Context, page, size int) ([]entity.SubCategory, int64, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.SubCategory, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// List фильтрует по имени категории без учёта регистра, если оно задано
	List(ctx context.Context, categoryName string, page, size int) ([]entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type TagRepository interface {
	FindByNameIgnoreCase(ctx context.Context, name string) (*entity.Tag, error)
	Create(ctx context.Context, tag *entity.Tag) error
}

type IngredientRepository interface {
	FindByNameIgnoreCase(ctx context.Context, name string) (*entity.Ingredient, error)
	Create(ctx context.Context, ingredient *entity.Ingredient) error
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}
