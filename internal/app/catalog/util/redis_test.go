package util

import (
	"context"
	"testing"
	"time"

	"pscosmeticos/internal/app/catalog/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisClientForTest(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestRedisClient_SetAndGetCategoryPage(t *testing.T) {
	// Arrange
	client, _ := newRedisClientForTest(t)
	ctx := context.Background()

	page := &CategoryPage{
		Items: []entity.Category{
			{ID: uuid.New(), Name: "Skin Care", Slug: "skin-care", TotalProducts: 3},
		},
		Total: 1,
	}

	// Act
	err := client.SetCategoryPage(ctx, page, time.Hour)
	require.NoError(t, err)

	got, err := client.GetCategoryPage(ctx)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "skin-care", got.Items[0].Slug)
	assert.Equal(t, 3, got.Items[0].TotalProducts)
}

func TestRedisClient_GetCategoryPage_MissGivesNilNil(t *testing.T) {
	// Arrange
	client, _ := newRedisClientForTest(t)

	// Act
	got, err := client.GetCategoryPage(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisClient_DeleteCategoryPage(t *testing.T) {
	// Arrange
	client, _ := newRedisClientForTest(t)
	ctx := context.Background()

	page := &CategoryPage{Total: 2}
	require.NoError(t, client.SetCategoryPage(ctx, page, time.Hour))

	// Act
	err := client.DeleteCategoryPage(ctx)

	// Assert
	require.NoError(t, err)

	got, err := client.GetCategoryPage(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisClient_CategoryPageExpires(t *testing.T) {
	// Arrange
	client, mr := newRedisClientForTest(t)
	ctx := context.Background()

	require.NoError(t, client.SetCategoryPage(ctx, &CategoryPage{Total: 1}, time.Minute))

	// Act: miniredis позволяет промотать время вручную
	mr.FastForward(2 * time.Minute)

	got, err := client.GetCategoryPage(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, got)
}
