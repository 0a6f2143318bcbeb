package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/service"
)

// CategoryHandler обрабатывает HTTP-запросы категорий
type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// List возвращает страницу категорий.
// Первая страница размера по умолчанию обычно приходит из Redis.
func (h *CategoryHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	categories, total, err := h.categoryService.List(c.Request.Context(), page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, entity.NewPageResponse(categories, page, size, total))
}

// Create создает категорию из multipart-запроса (части dados и imagem)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := bindDados(c, &req); err != nil {
		respondValidationErrors(c, err)
		return
	}

	image, err := readImagePart(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req, image)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, category)
}

// Edit редактирует категорию. Часть imagem необязательна:
// без нее прежнее изображение сохраняется.
func (h *CategoryHandler) Edit(c *gin.Context) {
	var req entity.EditCategoryRequest
	if err := bindDados(c, &req); err != nil {
		respondValidationErrors(c, err)
		return
	}

	image, err := readImagePart(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	category, err := h.categoryService.Edit(c.Request.Context(), &req, image)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, category)
}

// Delete удаляет пустую категорию. Категория с товарами
// отклоняется конвертом с кодом C.ITDx0001.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success: false,
			Data:    "Invalid category id",
		})
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, nil)
}

// SubCategories возвращает подкатегории одной категории
func (h *CategoryHandler) SubCategories(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success: false,
			Data:    "Invalid category id",
		})
		return
	}

	subCategories, err := h.categoryService.SubCategories(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]entity.SubCategoryResponse, 0, len(subCategories))
	for i := range subCategories {
		responses = append(responses, entity.NewSubCategoryResponse(&subCategories[i]))
	}

	respondOK(c, http.StatusOK, responses)
}

// SubCategoryHandler обрабатывает HTTP-запросы подкатегорий
type SubCategoryHandler struct {
	subCategoryService *service.SubCategoryService
}

func NewSubCategoryHandler(subCategoryService *service.SubCategoryService) *SubCategoryHandler {
	return &SubCategoryHandler{
		subCategoryService: subCategoryService,
	}
}

func (h *SubCategoryHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	subCategories, total, err := h.subCategoryService.List(c.Request.Context(), page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]entity.SubCategoryResponse, 0, len(subCategories))
	for i := range subCategories {
		responses = append(responses, entity.NewSubCategoryResponse(&subCategories[i]))
	}

	respondOK(c, http.StatusOK, entity.NewPageResponse(responses, page, size, total))
}

func (h *SubCategoryHandler) Create(c *gin.Context) {
	var req entity.CreateSubCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success: false,
			Data:    "Invalid request body",
		})
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationErrors(c, err)
		return
	}

	subCategory, err := h.subCategoryService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, entity.NewSubCategoryResponse(subCategory))
}

// pageParams читает параметры пагинации с дефолтами каталога
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(service.DefaultPageSize)))
	if err != nil || size <= 0 {
		size = service.DefaultPageSize
	}
	return page, size
}
