package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/repository"
	"pscosmeticos/internal/app/catalog/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceMocks struct {
	productRepo  *mocks.MockProductRepository
	categoryRepo *mocks.MockCategoryRepository
	subRepo      *mocks.MockSubCategoryRepository
	tagRepo      *mocks.MockTagRepository
	ingRepo      *mocks.MockIngredientRepository
	images       *mockImageStore
	publisher    *mocks.MockMessagePublisher
}

func newProductServiceForTest(t *testing.T) (*ProductService, *productServiceMocks) {
	t.Helper()

	m := &productServiceMocks{
		productRepo:  new(mocks.MockProductRepository),
		categoryRepo: new(mocks.MockCategoryRepository),
		subRepo:      new(mocks.MockSubCategoryRepository),
		tagRepo:      new(mocks.MockTagRepository),
		ingRepo:      new(mocks.MockIngredientRepository),
		images:       new(mockImageStore),
		publisher:    new(mocks.MockMessagePublisher),
	}

	zone, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	normalizer := NewNormalizerService(m.tagRepo, m.ingRepo)
	service := NewProductService(
		m.productRepo,
		m.categoryRepo,
		m.subRepo,
		normalizer,
		m.images,
		m.publisher,
		zone,
	)
	return service, m
}

func validProductData(categoryID uuid.UUID) *entity.ProductData {
	return &entity.ProductData{
		Nome:         "Serum Facial",
		Tipo:         "STATIC",
		Categoria:    categoryID,
		Preco:        89.90,
		Descricao:    "serum",
		Ingredientes: []string{"Aqua"},
		Tags:         []string{"Vegan"},
		Ativo:        true,
	}
}

// ===================== Create Tests =====================

func TestProductCreate_Success(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	categoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Skin Care", Slug: "skin-care"}
	data := validProductData(categoryID)
	image := []byte{0x01}

	m.categoryRepo.On("GetByID", ctx, categoryID).Return(category, nil)
	m.ingRepo.On("FindByNameIgnoreCase", ctx, "Aqua").
		Return(&entity.Ingredient{ID: uuid.New(), Name: "Aqua"}, nil)
	m.tagRepo.On("FindByNameIgnoreCase", ctx, "Vegan").
		Return(&entity.Tag{ID: uuid.New(), Name: "Vegan"}, nil)
	m.images.On("Store", image, ImageOwnerProduct, "serum-facial").
		Return("http://localhost:8080/api/v1/image/Product-serum-facial-abc.webp", nil)
	m.productRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Name == "Serum Facial" &&
			p.Slug == "serum-facial" &&
			p.Type == entity.ProductTypeStatic &&
			p.CategoryID == categoryID &&
			p.MultiColor == nil
	})).Return(nil)
	m.categoryRepo.On("IncrementTotalProducts", ctx, categoryID, 1).Return(nil)
	m.publisher.On("PublishMessage", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	// Act
	product, err := service.Create(ctx, data, image)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, product)
	assert.Equal(t, "serum-facial", product.Slug)
	assert.False(t, product.CreatedAt.IsZero())
	m.productRepo.AssertExpectations(t)
	m.categoryRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestProductCreate_PublishesCreatedEvent(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	categoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Skin Care"}
	data := validProductData(categoryID)
	data.Ingredientes = nil
	data.Tags = nil

	m.categoryRepo.On("GetByID", ctx, categoryID).Return(category, nil)
	m.images.On("Store", mock.Anything, ImageOwnerProduct, mock.Anything).Return("url", nil)
	m.productRepo.On("Create", ctx, mock.Anything).Return(nil)
	m.categoryRepo.On("IncrementTotalProducts", ctx, categoryID, 1).Return(nil)

	var published []byte
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).([]byte)
		}).
		Return(nil)

	// Act
	product, err := service.Create(ctx, data, []byte{0x01})

	// Assert
	require.NoError(t, err)

	var event entity.ProductEvent
	require.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, EventProductCreated, event.EventType)
	assert.Equal(t, product.ID, event.ProductID)
	assert.Equal(t, categoryID, event.CategoryID)
}

func TestProductCreate_UnknownCategory(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	categoryID := uuid.New()
	data := validProductData(categoryID)

	m.categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	// Act
	product, err := service.Create(ctx, data, []byte{0x01})

	// Assert
	assert.Nil(t, product)

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Message, categoryID.String())
	assert.Contains(t, domainErr.Message, "do not exist")
	m.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreate_SubCategoryFromAnotherCategory(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	categoryID := uuid.New()
	subCategoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Skin Care"}
	data := validProductData(categoryID)
	data.SubCategoria = &subCategoryID

	m.categoryRepo.On("GetByID", ctx, categoryID).Return(category, nil)
	m.subRepo.On("GetByIDAndCategory", ctx, subCategoryID, categoryID).
		Return(nil, repository.ErrSubCategoryNotFound)

	// Act
	product, err := service.Create(ctx, data, []byte{0x01})

	// Assert
	assert.Nil(t, product)

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Sub-category don't belong to the category.", domainErr.Message)
	// Отказ до нормализации: ни один тег или ингредиент не создан
	m.tagRepo.AssertNotCalled(t, "FindByNameIgnoreCase", mock.Anything, mock.Anything)
	m.ingRepo.AssertNotCalled(t, "FindByNameIgnoreCase", mock.Anything, mock.Anything)
}

func TestProductCreate_UnknownType(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	categoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Skin Care"}
	data := validProductData(categoryID)
	data.Tipo = "HOLOGRAPHIC"

	m.categoryRepo.On("GetByID", ctx, categoryID).Return(category, nil)

	// Act
	product, err := service.Create(ctx, data, []byte{0x01})

	// Assert
	assert.Nil(t, product)

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "The product type you trying to send do not exist!", domainErr.Message)
	m.tagRepo.AssertNotCalled(t, "FindByNameIgnoreCase", mock.Anything, mock.Anything)
}

func TestProductCreate_MultiColorKeptOnlyForMultiColorType(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	categoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Makeup"}
	data := validProductData(categoryID)
	data.Tipo = "MULTI_COLOR"
	data.Cores = map[string]string{"vermelho": "#FF0000"}
	data.Ingredientes = nil
	data.Tags = nil

	m.categoryRepo.On("GetByID", ctx, categoryID).Return(category, nil)
	m.images.On("Store", mock.Anything, ImageOwnerProduct, mock.Anything).Return("url", nil)
	m.productRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Type == entity.ProductTypeMultiColor && p.MultiColor["vermelho"] == "#FF0000"
	})).Return(nil)
	m.categoryRepo.On("IncrementTotalProducts", ctx, categoryID, 1).Return(nil)
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	product, err := service.Create(ctx, data, []byte{0x01})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "#FF0000", product.MultiColor["vermelho"])
}

func TestProductCreate_ColorsDroppedForStaticType(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	categoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Skin Care"}
	data := validProductData(categoryID)
	data.Cores = map[string]string{"azul": "#0000FF"}
	data.Ingredientes = nil
	data.Tags = nil

	m.categoryRepo.On("GetByID", ctx, categoryID).Return(category, nil)
	m.images.On("Store", mock.Anything, ImageOwnerProduct, mock.Anything).Return("url", nil)
	m.productRepo.On("Create", ctx, mock.Anything).Return(nil)
	m.categoryRepo.On("IncrementTotalProducts", ctx, categoryID, 1).Return(nil)
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	product, err := service.Create(ctx, data, []byte{0x01})

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, product.MultiColor)
}

// ===================== Edit Tests =====================

func TestProductEdit_FullPayloadNameChangeUpdatesSlug(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	productID := uuid.New()
	categoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Skin Care"}
	existing := &entity.Product{
		ID:         productID,
		Name:       "Serum Facial",
		Slug:       "serum-facial",
		Type:       entity.ProductTypeStatic,
		CategoryID: categoryID,
		Price:      89.90,
		Active:     true,
	}

	// Полный payload, отличается только имя
	data := validProductData(categoryID)
	data.Nome = "Serum Noturno"
	data.Ingredientes = nil
	data.Tags = nil

	m.productRepo.On("GetByID", ctx, productID).Return(existing, nil)
	m.categoryRepo.On("GetByID", ctx, categoryID).Return(category, nil)
	m.productRepo.On("Update", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Name == "Serum Noturno" && p.Slug == "serum-noturno"
	})).Return(nil)
	m.publisher.On("PublishMessage", ctx, productID.String(), mock.Anything).Return(nil)

	// Act
	product, err := service.Edit(ctx, productID, data, nil)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "serum-noturno", product.Slug)
	assert.False(t, product.UpdatedAt.IsZero())
	m.productRepo.AssertExpectations(t)
}

func TestProductEdit_NilSubCategoryKeepsCurrent(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	productID := uuid.New()
	categoryID := uuid.New()
	subCategoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Skin Care"}
	existing := &entity.Product{
		ID:            productID,
		Name:          "Serum Facial",
		Slug:          "serum-facial",
		Type:          entity.ProductTypeStatic,
		CategoryID:    categoryID,
		SubCategoryID: &subCategoryID,
	}

	data := validProductData(categoryID)
	data.SubCategoria = nil
	data.Ingredientes = nil
	data.Tags = nil

	m.productRepo.On("GetByID", ctx, productID).Return(existing, nil)
	m.categoryRepo.On("GetByID", ctx, categoryID).Return(category, nil)
	m.productRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	product, err := service.Edit(ctx, productID, data, nil)

	// Assert
	assert.NoError(t, err)
	// Подкатегория не передана и осталась прежней
	assert.Equal(t, &subCategoryID, product.SubCategoryID)
	m.subRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProductEdit_NotFound(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	productID := uuid.New()

	m.productRepo.On("GetByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

	// Act
	product, err := service.Edit(ctx, productID, validProductData(uuid.New()), nil)

	// Assert
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.Nil(t, product)
}

// ===================== Delete Tests =====================

func TestProductDelete_Success(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	productID := uuid.New()
	categoryID := uuid.New()
	existing := &entity.Product{
		ID:         productID,
		Name:       "Serum Facial",
		CategoryID: categoryID,
		ImageURL:   "http://localhost:8080/api/v1/image/Product-serum-facial-abc.webp",
	}

	m.productRepo.On("GetByID", ctx, productID).Return(existing, nil)
	m.productRepo.On("Delete", ctx, productID).Return(nil)
	m.images.On("Remove", existing.ImageURL).Return(nil)
	m.categoryRepo.On("IncrementTotalProducts", ctx, categoryID, -1).Return(nil)

	var published []byte
	m.publisher.On("PublishMessage", ctx, productID.String(), mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).([]byte)
		}).
		Return(nil)

	// Act
	err := service.Delete(ctx, productID)

	// Assert
	require.NoError(t, err)

	var event entity.ProductEvent
	require.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, EventProductDeleted, event.EventType)
	m.productRepo.AssertExpectations(t)
	m.categoryRepo.AssertExpectations(t)
}

func TestProductDelete_KafkaFailureDoesNotFailOperation(t *testing.T) {
	// Arrange
	service, m := newProductServiceForTest(t)

	ctx := context.Background()
	productID := uuid.New()
	categoryID := uuid.New()
	existing := &entity.Product{ID: productID, CategoryID: categoryID}

	m.productRepo.On("GetByID", ctx, productID).Return(existing, nil)
	m.productRepo.On("Delete", ctx, productID).Return(nil)
	m.categoryRepo.On("IncrementTotalProducts", ctx, categoryID, -1).Return(nil)
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).
		Return(assert.AnError)

	// Act
	err := service.Delete(ctx, productID)

	// Assert
	assert.NoError(t, err)
}
