package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pscosmeticos/internal/app/catalog/entity"

	"github.com/redis/go-redis/v9"
)

// Ключ первой страницы списка категорий - единственной, которую
// имеет смысл кешировать: её запрашивает витрина при каждом открытии
const categoriesCacheKey = "categories:first_page"

// CategoryPage - кешируемая страница категорий вместе с общим количеством
type CategoryPage struct {
	Items []entity.Category `json:"items"`
	Total int64             `json:"total"`
}

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetCategoryPage(ctx context.Context, page *CategoryPage, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal category page: %w", err)
	}

	if err := r.client.Set(ctx, categoriesCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set category page in cache: %w", err)
	}

	return nil
}

// GetCategoryPage возвращает (nil, nil) при промахе кеша
func (r *RedisClient) GetCategoryPage(ctx context.Context) (*CategoryPage, error) {
	data, err := r.client.Get(ctx, categoriesCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category page from cache: %w", err)
	}

	var page CategoryPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category page: %w", err)
	}

	return &page, nil
}

func (r *RedisClient) DeleteCategoryPage(ctx context.Context) error {
	if err := r.client.Del(ctx, categoriesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete category page from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
