package service

import (
	"context"
	"fmt"
	"time"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/repository"

	"github.com/google/uuid"
)

// SubCategoryService обрабатывает бизнес-логику подкатегорий
type SubCategoryService struct {
	subRepo      repository.SubCategoryRepository
	categoryRepo repository.CategoryRepository
}

// NewSubCategoryService создает новый сервис подкатегорий
func NewSubCategoryService(subRepo repository.SubCategoryRepository, categoryRepo repository.CategoryRepository) *SubCategoryService {
	return &SubCategoryService{
		subRepo:      subRepo,
		categoryRepo: categoryRepo,
	}
}

// Create создает подкатегорию, явно проверяя существование категории.
// Ленивое связывание по id заменено проверкой в точке создания,
// чтобы неверный id не всплывал позже при первом обращении.
func (s *SubCategoryService) Create(ctx context.Context, req *entity.CreateSubCategoryRequest) (*entity.SubCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		if err == repository.ErrCategoryNotFound {
			return nil, NewCategoryNotExistError(req.CategoryID)
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	subCategory := &entity.SubCategory{
		ID:         uuid.New(),
		Name:       req.Name,
		CategoryID: category.ID,
		Category:   category,
		CreatedAt:  time.Now(),
	}

	if err := s.subRepo.Create(ctx, subCategory); err != nil {
		return nil, fmt.Errorf("failed to create sub-category: %w", err)
	}

	return subCategory, nil
}

// List возвращает страницу подкатегорий
func (s *SubCategoryService) List(ctx context.Context, page, size int) ([]entity.SubCategory, int64, error) {
	subCategories, total, err := s.subRepo.List(ctx, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sub-categories: %w", err)
	}

	return subCategories, total, nil
}
