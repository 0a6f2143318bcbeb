package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductType(t *testing.T) {
	// Регистр входа не важен
	pt, ok := ParseProductType("static")
	assert.True(t, ok)
	assert.Equal(t, ProductTypeStatic, pt)

	pt, ok = ParseProductType("MULTI_COLOR")
	assert.True(t, ok)
	assert.Equal(t, ProductTypeMultiColor, pt)

	_, ok = ParseProductType("HOLOGRAPHIC")
	assert.False(t, ok)

	_, ok = ParseProductType("")
	assert.False(t, ok)
}

func TestColorMap_ValueAndScan(t *testing.T) {
	// Arrange
	colors := ColorMap{"vermelho": "#FF0000", "azul": "#0000FF"}

	// Act
	value, err := colors.Value()
	require.NoError(t, err)

	var restored ColorMap
	require.NoError(t, restored.Scan(value))

	// Assert
	assert.Equal(t, colors, restored)
}

func TestColorMap_ScanNil(t *testing.T) {
	var colors ColorMap
	require.NoError(t, colors.Scan(nil))
	assert.Nil(t, colors)
}

func TestCategoryRename_RegeneratesSlug(t *testing.T) {
	category := &Category{Name: "Skin Care", Slug: "skin-care"}

	category.Rename("Body Wash & Soap")

	assert.Equal(t, "Body Wash & Soap", category.Name)
	assert.Equal(t, "body-wash-soap", category.Slug)
}

func TestNewPageResponse_TotalPagesRoundsUp(t *testing.T) {
	page := NewPageResponse([]Category{}, 0, 12, 25)

	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	exact := NewPageResponse([]Category{}, 0, 12, 24)
	assert.Equal(t, 2, exact.TotalPages)
}

func TestNewProductResponse_SubCategoryPlaceholder(t *testing.T) {
	product := &Product{
		ID:   uuid.New(),
		Name: "Serum",
		Type: ProductTypeStatic,
	}

	resp := NewProductResponse(product)

	assert.Nil(t, resp.SubCategory.ID)
	assert.Equal(t, "Sem subcategoria", resp.SubCategory.Nome)
	// Пустые связи дают пустые списки, не null
	assert.NotNil(t, resp.Tags)
	assert.NotNil(t, resp.Ingredients)
}
