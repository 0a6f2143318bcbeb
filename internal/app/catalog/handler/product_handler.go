package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/service"
)

// ProductHandler обрабатывает HTTP-запросы товаров
type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// List возвращает страницу товаров с необязательным фильтром
// ?category= по имени категории
func (h *ProductHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	categoryName := c.Query("category")

	products, total, err := h.productService.List(c.Request.Context(), categoryName, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]entity.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, entity.NewProductResponse(&products[i]))
	}

	respondOK(c, http.StatusOK, entity.NewPageResponse(responses, page, size, total))
}

// Get возвращает полную проекцию одного товара
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success: false,
			Data:    "Invalid product id",
		})
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, entity.NewProductResponse(product))
}

// Create создает товар из multipart-запроса (части dados и imagem)
func (h *ProductHandler) Create(c *gin.Context) {
	var data entity.ProductData
	if err := bindDados(c, &data); err != nil {
		respondValidationErrors(c, err)
		return
	}

	image, err := readImagePart(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &data, image)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, entity.NewProductResponse(product))
}

// Edit прогоняет товар через конвейер редакторов полей.
// Изображение необязательно, без него остается прежнее.
func (h *ProductHandler) Edit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success: false,
			Data:    "Invalid product id",
		})
		return
	}

	var data entity.ProductData
	if err := bindDados(c, &data); err != nil {
		respondValidationErrors(c, err)
		return
	}

	image, err := readImagePart(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	product, err := h.productService.Edit(c.Request.Context(), id, &data, image)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, entity.NewProductResponse(product))
}

// Delete удаляет товар вместе с его изображением
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success: false,
			Data:    "Invalid product id",
		})
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, nil)
}
