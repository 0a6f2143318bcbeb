package service

import (
	"context"
	"encoding/json"
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

// Типы событий каталога, уходящих в Kafka
const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
)

// ProductService обрабатывает бизнес-логику товаров.
// Координирует репозитории, нормализатор тегов/ингредиентов,
// хранилище изображений и Kafka producer.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	subRepo      repository.SubCategoryRepository
	normalizer   *NormalizerService
	images       ImageStore
	publisher    util.MessagePublisher
	zone         *time.Location
	editors      []productEditor
}

// NewProductService создает новый сервис товаров с внедрением зависимостей.
// zone - фиксированный часовой пояс меток создания и обновления.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	subRepo repository.SubCategoryRepository,
	normalizer *NormalizerService,
	images ImageStore,
	publisher util.MessagePublisher,
	zone *time.Location,
) *ProductService {
	s := &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		subRepo:      subRepo,
		normalizer:   normalizer,
		images:       images,
		publisher:    publisher,
		zone:         zone,
	}
	s.editors = s.defaultEditors()
	return s
}

// Create создает товар. Порядок проверок важен: категория,
// принадлежность подкатегории и тип проверяются до того, как
// нормализатор создаст хоть одну строку тега или ингредиента,
// чтобы отказ не оставлял частичных записей.
func (s *ProductService) Create(ctx context.Context, data *entity.ProductData, image []byte) (*entity.Product, error) {
	category, err := s.categoryRepo.GetByID(ctx, data.Categoria)
	if err != nil {
		if err == repository.ErrCategoryNotFound {
			return nil, NewCategoryNotExistError(data.Categoria)
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	var subCategory *entity.SubCategory
	if data.SubCategoria != nil {
		subCategory, err = s.subRepo.GetByIDAndCategory(ctx, *data.SubCategoria, category.ID)
		if err != nil {
			if err == repository.ErrSubCategoryNotFound {
				return nil, NewSubCategoryMismatchError()
			}
			return nil, fmt.Errorf("failed to verify sub-category: %w", err)
		}
	}

	productType, ok := entity.ParseProductType(data.Tipo)
	if !ok {
		return nil, NewUnknownProductTypeError()
	}

	ingredients, err := s.normalizer.ResolveIngredients(ctx, data.Ingredientes)
	if err != nil {
		return nil, err
	}
	tags, err := s.normalizer.ResolveTags(ctx, data.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.zone)
	product := &entity.Product{
		ID:                  uuid.New(),
		Name:                data.Nome,
		Slug:                slug.Make(data.Nome),
		Type:                productType,
		CategoryID:          category.ID,
		Category:            category,
		Price:               data.Preco,
		DiscountPrice:       data.PrecoDesconto,
		Description:         data.Descricao,
		CompleteDescription: data.DescricaoCompleta,
		HowToUse:            data.ModoUso,
		Active:              data.Ativo,
		CreatedAt:           now,
		UpdatedAt:           now,
		Ingredients:         ingredients,
		Tags:                tags,
	}
	if subCategory != nil {
		product.SubCategoryID = &subCategory.ID
		product.SubCategory = subCategory
	}
	// Карта цветов хранится только у MULTI_COLOR товаров с непустым вводом
	if productType == entity.ProductTypeMultiColor && len(data.Cores) > 0 {
		product.MultiColor = entity.ColorMap(data.Cores)
	}

	imageURL, err := s.images.Store(image, ImageOwnerProduct, product.Slug)
	if err != nil {
		return nil, err
	}
	product.ImageURL = imageURL

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.categoryRepo.IncrementTotalProducts(ctx, category.ID, 1); err != nil {
		logger.Warn().Err(err).Str("category_id", category.ID.String()).Msg("failed to bump category counter")
	}

	metrics.ProductsCreated.Inc()
	s.publishEvent(ctx, EventProductCreated, product)

	return product, nil
}

// Get получает товар со всеми связями
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// List возвращает страницу товаров с необязательным фильтром
// по имени категории без учёта регистра
func (s *ProductService) List(ctx context.Context, categoryName string, page, size int) ([]entity.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, categoryName, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// Edit прогоняет полный набор редакторов полей в фиксированном порядке,
// ставит метку обновления и сохраняет товар один раз.
// Непустое изображение заменяет старое: новый файл записывается до
// сохранения строки, старый удаляется последним.
func (s *ProductService) Edit(ctx context.Context, id uuid.UUID, data *entity.ProductData, image []byte) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, edit := range s.editors {
		if err := edit(ctx, product, data); err != nil {
			return nil, err
		}
	}
	product.UpdatedAt = time.Now().In(s.zone)

	oldImageURL := ""
	if len(image) > 0 {
		imageURL, err := s.images.Store(image, ImageOwnerProduct, product.Slug)
		if err != nil {
			return nil, err
		}
		oldImageURL = product.ImageURL
		product.ImageURL = imageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if oldImageURL != "" {
		if err := s.images.Remove(oldImageURL); err != nil {
			logger.Warn().Err(err).Str("image", oldImageURL).Msg("failed to remove replaced product image")
		}
	}

	s.publishEvent(ctx, EventProductUpdated, product)

	return product, nil
}

// Delete удаляет товар, его изображение (по возможности)
// и уменьшает счётчик категории
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if product.ImageURL != "" {
		if err := s.images.Remove(product.ImageURL); err != nil {
			// Строка уже удалена, файл лишь осиротел; починит ничего нельзя
			logger.Warn().Err(err).Str("image", product.ImageURL).Msg("failed to remove product image")
		}
	}

	if err := s.categoryRepo.IncrementTotalProducts(ctx, product.CategoryID, -1); err != nil {
		logger.Warn().Err(err).Str("category_id", product.CategoryID.String()).Msg("failed to bump category counter")
	}

	metrics.ProductsDeleted.Inc()
	s.publishEvent(ctx, EventProductDeleted, product)

	return nil
}

// publishEvent отправляет событие о товаре в Kafka.
// Key - это id товара для партиционирования.
// Операция уже завершена, проблемы с Kafka не прерывают выполнение.
func (s *ProductService) publishEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType:  eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		Slug:       product.Slug,
		Price:      product.Price,
		CategoryID: product.CategoryID,
		Timestamp:  time.Now().In(s.zone),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal product event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, product.ID.String(), eventData); err != nil {
		logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish product event")
	}
}
