package service

import (
	"context"
	"fmt"
	"time"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/repository"
	"pscosmeticos/internal/app/catalog/util"
	"pscosmeticos/pkg/logger"
	"pscosmeticos/pkg/metrics"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// DefaultPageSize - размер страницы списочных запросов по умолчанию
const DefaultPageSize = 12

const categoryCacheTTL = time.Hour

// CategoryService обрабатывает бизнес-логику категорий каталога.
// Координирует репозитории, хранилище изображений и Redis кеш.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	subRepo      repository.SubCategoryRepository
	images       ImageStore
	cache        util.CategoryCache
}

// NewCategoryService создает новый сервис категорий с внедрением зависимостей
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	subRepo repository.SubCategoryRepository,
	images ImageStore,
	cache util.CategoryCache,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		subRepo:      subRepo,
		images:       images,
		cache:        cache,
	}
}

// Create создает категорию: слаг выводится из имени, счётчик товаров
// обнуляется, изображение сохраняется до записи в БД.
func (s *CategoryService) Create(ctx context.Context, req *entity.CreateCategoryRequest, image []byte) (*entity.Category, error) {
	category := &entity.Category{
		ID:            uuid.New(),
		Name:          req.Nome,
		Slug:          slug.Make(req.Nome),
		Description:   req.Descricao,
		TotalProducts: 0,
		Active:        *req.Ativo,
		CreatedAt:     time.Now(),
	}

	imageURL, err := s.images.Store(image, ImageOwnerCategory, category.Slug)
	if err != nil {
		return nil, err
	}
	category.ImageURL = imageURL

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCache(ctx)

	return category, nil
}

// Edit применяет только переданные поля: nil означает "не менять".
// Переименование пересчитывает слаг. Новое изображение сначала
// записывается на диск, строка сохраняется, и только затем удаляется
// старый файл - так изображение не теряется при сбое между шагами.
func (s *CategoryService) Edit(ctx context.Context, req *entity.EditCategoryRequest, image []byte) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Nome != nil {
		category.Rename(*req.Nome)
	}
	if req.Descricao != nil {
		category.Description = *req.Descricao
	}
	if req.Ativo != nil {
		category.Active = *req.Ativo
	}

	oldImageURL := ""
	if len(image) > 0 {
		imageURL, err := s.images.Store(image, ImageOwnerCategory, category.Slug)
		if err != nil {
			return nil, err
		}
		oldImageURL = category.ImageURL
		category.ImageURL = imageURL
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if oldImageURL != "" {
		if err := s.images.Remove(oldImageURL); err != nil {
			// Строка уже указывает на новый файл, старый лишь осиротел
			logger.Warn().Err(err).Str("image", oldImageURL).Msg("failed to remove replaced category image")
		}
	}

	s.invalidateCache(ctx)

	return category, nil
}

// Delete удаляет категорию вместе с её изображением.
// Категория с товарами не удаляется. Удаление файла и строки
// не атомарно: сбой между ними оставляет категорию без изображения.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if count > 0 {
		return NewCategoryHasProductsError()
	}

	if category.ImageURL != "" {
		if err := s.images.Remove(category.ImageURL); err != nil {
			return fmt.Errorf("failed to remove category image: %w", err)
		}
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCache(ctx)

	return nil
}

// List возвращает страницу категорий.
// Первая страница со стандартным размером кешируется в Redis на час.
func (s *CategoryService) List(ctx context.Context, page, size int) ([]entity.Category, int64, error) {
	cacheable := page == 0 && size == DefaultPageSize

	if cacheable {
		cached, err := s.cache.GetCategoryPage(ctx)
		if err == nil && cached != nil {
			metrics.RedisCacheHits.WithLabelValues("catalog", "categories").Inc()
			return cached.Items, cached.Total, nil
		}
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read categories cache")
		}
		metrics.RedisCacheMisses.WithLabelValues("catalog", "categories").Inc()
	}

	categories, total, err := s.categoryRepo.List(ctx, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	if cacheable {
		cachePage := &util.CategoryPage{Items: categories, Total: total}
		if err := s.cache.SetCategoryPage(ctx, cachePage, categoryCacheTTL); err != nil {
			// Данные уже получены из БД, проблемы с кешем не критичны
			logger.Warn().Err(err).Msg("failed to cache categories")
		}
	}

	return categories, total, nil
}

// SubCategories возвращает подкатегории существующей категории
func (s *CategoryService) SubCategories(ctx context.Context, categoryID uuid.UUID) ([]entity.SubCategory, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	subCategories, err := s.subRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-categories: %w", err)
	}

	return subCategories, nil
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeleteCategoryPage(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
}
