package util

import (
	"context"
	"time"
)

// CategoryCache интерфейс кеша списка категорий
// Используется для dependency injection и упрощения тестирования
type CategoryCache interface {
	SetCategoryPage(ctx context.Context, page *CategoryPage, ttl time.Duration) error
	GetCategoryPage(ctx context.Context) (*CategoryPage, error)
	DeleteCategoryPage(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс отправки событий каталога в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
