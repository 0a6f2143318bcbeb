package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ProductType - тип товара. Определяет, хранится ли у товара карта цветов.
type ProductType string

const (
	ProductTypeStatic     ProductType = "STATIC"
	ProductTypeMultiColor ProductType = "MULTI_COLOR"
)

// ParseProductType разбирает тип товара из входных данных без учёта регистра.
// Возвращает false для любого значения вне известного набора.
func ParseProductType(raw string) (ProductType, bool) {
	switch strings.ToUpper(raw) {
	case string(ProductTypeStatic):
		return ProductTypeStatic, true
	case string(ProductTypeMultiColor):
		return ProductTypeMultiColor, true
	default:
		return "", false
	}
}

// ColorMap - карта "цвет -> значение" для товаров MULTI_COLOR.
// Хранится в PostgreSQL одной jsonb-колонкой.
type ColorMap map[string]string

func (m ColorMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *ColorMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported color map source type %T", value)
	}
	return json.Unmarshal(data, m)
}

// Category представляет категорию каталога.
// Слаг всегда выводится из имени и пересчитывается при переименовании.
type Category struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"nome"`
	Slug          string    `gorm:"not null;index" json:"slug"`
	Description   string    `json:"descricao"`
	ImageURL      string    `json:"imageUrl"`
	TotalProducts int       `json:"totalProdutos"`
	Active        bool      `json:"ativo"`
	CreatedAt     time.Time `json:"-"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"-"`
	Products      []Product     `gorm:"foreignKey:CategoryID" json:"-"`
}

// Rename меняет имя категории и пересчитывает слаг
func (c *Category) Rename(name string) {
	c.Name = name
	c.Slug = slug.Make(name)
}

// SubCategory принадлежит ровно одной категории
type SubCategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Category   *Category `json:"-"`
	CreatedAt  time.Time `json:"-"`
}

// Tag - свободная метка товара. Уникальность имени обеспечивается
// сервисом нормализации (поиск без учёта регистра перед созданием).
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null" json:"name"`
}

// Ingredient - ингредиент состава, разделяется товарами через many2many
type Ingredient struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null" json:"name"`
}

// Product представляет товар каталога.
// MultiColor заполняется только для типа MULTI_COLOR и непустой карты цветов.
type Product struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name                string      `gorm:"not null"`
	Slug                string      `gorm:"not null;index"`
	Type                ProductType `gorm:"not null"`
	ImageURL            string
	CategoryID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Category            *Category
	SubCategoryID       *uuid.UUID `gorm:"type:uuid"`
	SubCategory         *SubCategory
	Price               float64
	DiscountPrice       float64
	MultiColor          ColorMap `gorm:"type:jsonb"`
	Description         string
	CompleteDescription string
	HowToUse            string
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Ingredients []Ingredient `gorm:"many2many:product_ingredients"`
	Tags        []Tag        `gorm:"many2many:product_tags"`
}

// Rename меняет имя товара и пересчитывает слаг
func (p *Product) Rename(name string) {
	p.Name = name
	p.Slug = slug.Make(name)
}

// User - учётная запись администратора панели управления
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
}
