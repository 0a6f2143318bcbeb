package repository

import (
	"context"
	"errors"

	"pscosmeticos/internal/app/catalog/entity"

	"gorm.io/gorm"
)

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository создает новый репозиторий тегов
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindByNameIgnoreCase ищет тег по имени без учёта регистра
func (r *tagRepository) FindByNameIgnoreCase(ctx context.Context, name string) (*entity.Tag, error) {
	var tag entity.Tag
	result := r.db.WithContext(ctx).First(&tag, "LOWER(name) = LOWER(?)", name)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, result.Error
	}

	return &tag, nil
}

// Create создает новый тег
func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	result := r.db.WithContext(ctx).Create(tag)
	return result.Error
}
