package entity

import (
	"time"

	"github.com/google/uuid"
)

// APIResponse - единый конверт всех ответов API.
// errorCode отсутствует в JSON, если ошибка не содержит кода.
type APIResponse struct {
	Success   bool        `json:"success"`
	ErrorCode string      `json:"errorCode,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// FieldError - одна ошибка валидации поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PageResponse - страница результатов списочных запросов
type PageResponse struct {
	Content       interface{} `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
}

// NewPageResponse собирает страницу из результатов репозитория
func NewPageResponse(content interface{}, page, size int, total int64) PageResponse {
	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}
	return PageResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// CreateCategoryRequest - часть "dados" multipart-запроса создания категории
type CreateCategoryRequest struct {
	Nome      string `json:"nome" validate:"required,min=2,max=100"`
	Descricao string `json:"descricao" validate:"required"`
	Ativo     *bool  `json:"ativo" validate:"required"`
}

// EditCategoryRequest - частичное редактирование: nil-поле означает
// "оставить без изменений"
type EditCategoryRequest struct {
	ID        uuid.UUID `json:"id" validate:"required"`
	Nome      *string   `json:"nome" validate:"omitempty,min=2,max=100"`
	Descricao *string   `json:"descricao"`
	Ativo     *bool     `json:"ativo"`
}

type CreateSubCategoryRequest struct {
	Name       string    `json:"name" validate:"required,min=2,max=100"`
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
}

// ProductData - часть "dados" запросов создания и редактирования товара.
// Используется обоими путями: при редактировании набор редакторов
// перезаписывает поля товара значениями отсюда, кроме sub_categoria,
// которая при nil остаётся нетронутой.
type ProductData struct {
	Nome              string            `json:"nome" validate:"required,min=2,max=200"`
	Tipo              string            `json:"tipo" validate:"required"`
	Categoria         uuid.UUID         `json:"categoria" validate:"required"`
	SubCategoria      *uuid.UUID        `json:"sub_categoria"`
	Preco             float64           `json:"preco" validate:"gte=0"`
	PrecoDesconto     float64           `json:"precoDesconto" validate:"gte=0"`
	Cores             map[string]string `json:"cores"`
	Descricao         string            `json:"descricao"`
	DescricaoCompleta string            `json:"descricaoCompleta"`
	Ingredientes      []string          `json:"ingredientes"`
	ModoUso           string            `json:"modoUso"`
	Tags              []string          `json:"tags"`
	Ativo             bool              `json:"ativo"`
}

// CategoryInfo - краткая проекция категории внутри других ответов
type CategoryInfo struct {
	ID   uuid.UUID `json:"id"`
	Nome string    `json:"nome"`
}

// SubCategoryResponse - проекция подкатегории со сведениями о родителе
type SubCategoryResponse struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	CategoryInfo CategoryInfo `json:"category_info"`
}

func NewSubCategoryResponse(s *SubCategory) SubCategoryResponse {
	resp := SubCategoryResponse{
		ID:   s.ID,
		Name: s.Name,
	}
	if s.Category != nil {
		resp.CategoryInfo = CategoryInfo{ID: s.Category.ID, Nome: s.Category.Name}
	} else {
		resp.CategoryInfo = CategoryInfo{ID: s.CategoryID}
	}
	return resp
}

// SubCategoryInfo - вложенная проекция подкатегории товара.
// Для товара без подкатегории имя подменяется заглушкой.
type SubCategoryInfo struct {
	ID   *uuid.UUID `json:"id"`
	Nome string     `json:"nome"`
}

// ProductResponse - полная проекция товара для выдачи клиентам
type ProductResponse struct {
	ID                  uuid.UUID         `json:"id"`
	Name                string            `json:"name"`
	Slug                string            `json:"slug"`
	Tipo                string            `json:"tipo"`
	Cores               map[string]string `json:"cores,omitempty"`
	ImageURL            string            `json:"imageURL"`
	Category            CategoryInfo      `json:"category"`
	SubCategory         SubCategoryInfo   `json:"subcategory"`
	Price               float64           `json:"price"`
	DiscountPrice       float64           `json:"discountPrice"`
	Description         string            `json:"description"`
	CompleteDescription string            `json:"completeDescription"`
	Ingredients         []string          `json:"ingredients"`
	HowToUse            string            `json:"howToUse"`
	Tags                []string          `json:"tags"`
	Active              bool              `json:"active"`
	CreatedAt           time.Time         `json:"createAt"`
	UpdatedAt           time.Time         `json:"updateAt"`
}

func NewProductResponse(p *Product) ProductResponse {
	resp := ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Slug:                p.Slug,
		Tipo:                string(p.Type),
		Cores:               p.MultiColor,
		ImageURL:            p.ImageURL,
		Category:            CategoryInfo{ID: p.CategoryID},
		Price:               p.Price,
		DiscountPrice:       p.DiscountPrice,
		Description:         p.Description,
		CompleteDescription: p.CompleteDescription,
		Ingredients:         make([]string, 0, len(p.Ingredients)),
		HowToUse:            p.HowToUse,
		Tags:                make([]string, 0, len(p.Tags)),
		Active:              p.Active,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	if p.Category != nil {
		resp.Category.Nome = p.Category.Name
	}
	if p.SubCategory != nil {
		resp.SubCategory = SubCategoryInfo{ID: &p.SubCategory.ID, Nome: p.SubCategory.Name}
	} else {
		resp.SubCategory = SubCategoryInfo{Nome: "Sem subcategoria"}
	}
	for _, ing := range p.Ingredients {
		resp.Ingredients = append(resp.Ingredients, ing.Name)
	}
	for _, tag := range p.Tags {
		resp.Tags = append(resp.Tags, tag.Name)
	}
	return resp
}

// ProductEvent - событие изменения товара для Kafka
type ProductEvent struct {
	EventType  string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Price      float64   `json:"price"`
	CategoryID uuid.UUID `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}
