package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pscosmeticos/internal/app/catalog/service"
)

// ImageHandler отдает webp-файлы изображений каталога
type ImageHandler struct {
	images service.ImageStore
}

func NewImageHandler(images service.ImageStore) *ImageHandler {
	return &ImageHandler{
		images: images,
	}
}

// Get отдает изображение в запрошенном варианте масштаба.
// Неизвестный type дает пустой 204, отсутствующий файл - пустой 404.
func (h *ImageHandler) Get(c *gin.Context) {
	name := c.Param("name")
	variant := c.DefaultQuery("type", "DISPLAY")

	data, err := h.images.Fetch(name, variant)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if data == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	c.Data(http.StatusOK, "image/webp", data)
}
