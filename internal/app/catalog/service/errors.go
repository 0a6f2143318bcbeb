package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials возвращается при неверной паре логин/пароль
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrImageNotFound возвращается, когда файл изображения не найден на диске
	ErrImageNotFound = errors.New("image file not found")
)

// DomainError - нарушение бизнес-правила каталога.
// Обработчики превращают её в 400 с конвертом {title, message};
// Code попадает в errorCode конверта, если задан.
type DomainError struct {
	Code    string
	Title   string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Тексты ошибок сохраняют формулировки, на которые завязан фронтенд

func NewEmptyImageError() *DomainError {
	return &DomainError{
		Title:   "The image is null!",
		Message: "The image sent to the API doesn't exist",
	}
}

func NewCategoryNotExistError(id uuid.UUID) *DomainError {
	return &DomainError{
		Title:   "The category is invalid!",
		Message: fmt.Sprintf("The category id '%s' do not exist!", id),
	}
}

func NewSubCategoryMismatchError() *DomainError {
	return &DomainError{
		Title:   "The sub-category is invalid!",
		Message: "Sub-category don't belong to the category.",
	}
}

func NewUnknownProductTypeError() *DomainError {
	return &DomainError{
		Title:   "The product type is invalid!",
		Message: "The product type you trying to send do not exist!",
	}
}

func NewCategoryHasProductsError() *DomainError {
	return &DomainError{
		Code:    "C.ITDx0001",
		Title:   "The category is not empty!",
		Message: "The category has products inside!",
	}
}
