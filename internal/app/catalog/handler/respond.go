package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/repository"
	"pscosmeticos/internal/app/catalog/service"
	"pscosmeticos/pkg/logger"
)

var validate = validator.New()

// respondOK оборачивает данные в стандартный конверт успеха
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, entity.APIResponse{
		Success: true,
		Data:    data,
	})
}

// respondValidationErrors превращает ошибки валидатора в список
// {field, message} внутри конверта с кодом VALIDATION
func respondValidationErrors(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success:   false,
			ErrorCode: "VALIDATION",
			Data:      err.Error(),
		})
		return
	}

	fields := make([]entity.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, entity.FieldError{
			Field:   fe.Field(),
			Message: fe.Tag(),
		})
	}
	c.JSON(http.StatusBadRequest, entity.APIResponse{
		Success:   false,
		ErrorCode: "VALIDATION",
		Data:      fields,
	})
}

// handleServiceError - единая точка перевода ошибок сервисов в HTTP.
// Нарушения бизнес-правил дают 400 с конвертом {title, message},
// отсутствующие сущности - пустой 404, остальное - 500.
func handleServiceError(c *gin.Context, err error) {
	var domainErr *service.DomainError
	switch {
	case errors.As(err, &domainErr):
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success:   false,
			ErrorCode: domainErr.Code,
			Data: gin.H{
				"title":   domainErr.Title,
				"message": domainErr.Message,
			},
		})
	case errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrSubCategoryNotFound),
		errors.Is(err, repository.ErrProductNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, service.ErrImageNotFound):
		c.Status(http.StatusNotFound)
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, entity.APIResponse{
			Success: false,
			Data:    err.Error(),
		})
	}
}

// bindDados разбирает JSON из части "dados" multipart-запроса
// в целевую структуру и прогоняет валидацию
func bindDados(c *gin.Context, target interface{}) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}

	var payload []byte
	if values, ok := form.Value["dados"]; ok && len(values) > 0 {
		payload = []byte(values[0])
	} else if files, ok := form.File["dados"]; ok && len(files) > 0 {
		// JSON может приехать и файловой частью, клиенты делают по-разному
		f, err := files[0].Open()
		if err != nil {
			return err
		}
		defer f.Close()
		payload, err = io.ReadAll(f)
		if err != nil {
			return err
		}
	} else {
		return errors.New("multipart part 'dados' is required")
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return err
	}
	return validate.Struct(target)
}

// readImagePart читает необязательную часть "imagem".
// Отсутствие части не является ошибкой и возвращает nil.
func readImagePart(c *gin.Context) ([]byte, error) {
	file, _, err := c.Request.FormFile("imagem")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
