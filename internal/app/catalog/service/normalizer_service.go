package service

import (
	"context"
	"fmt"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/repository"
	"pscosmeticos/pkg/logger"

	"github.com/google/uuid"
)

// NormalizerService превращает свободный текст тегов и ингредиентов
// в записи справочников. Поиск идёт без учёта регистра, новая запись
// создается только если имени ещё нет; порядок входного списка сохраняется.
//
// Два конкурирующих запроса с одним и тем же новым именем могут оба
// промахнуться мимо поиска и создать дубликат - уникального индекса
// на имени нет, клиенты должны терпеть редкие дубли.
type NormalizerService struct {
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
}

// NewNormalizerService создает новый сервис нормализации
func NewNormalizerService(tagRepo repository.TagRepository, ingredientRepo repository.IngredientRepository) *NormalizerService {
	return &NormalizerService{
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

// ResolveTags возвращает записи тегов для списка имён,
// создавая отсутствующие
func (s *NormalizerService) ResolveTags(ctx context.Context, names []string) ([]entity.Tag, error) {
	tags := make([]entity.Tag, 0, len(names))
	for _, name := range names {
		existing, err := s.tagRepo.FindByNameIgnoreCase(ctx, name)
		if err == nil {
			logger.Debug().Str("tag", existing.Name).Msg("tag already exists")
			tags = append(tags, *existing)
			continue
		}
		if err != repository.ErrTagNotFound {
			return nil, fmt.Errorf("failed to look up tag: %w", err)
		}

		logger.Debug().Str("tag", name).Msg("tag does not exist, creating")
		tag := entity.Tag{ID: uuid.New(), Name: name}
		if err := s.tagRepo.Create(ctx, &tag); err != nil {
			return nil, fmt.Errorf("failed to create tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// ResolveIngredients возвращает записи ингредиентов для списка имён,
// создавая отсутствующие
func (s *NormalizerService) ResolveIngredients(ctx context.Context, names []string) ([]entity.Ingredient, error) {
	ingredients := make([]entity.Ingredient, 0, len(names))
	for _, name := range names {
		existing, err := s.ingredientRepo.FindByNameIgnoreCase(ctx, name)
		if err == nil {
			ingredients = append(ingredients, *existing)
			continue
		}
		if err != repository.ErrIngredientNotFound {
			return nil, fmt.Errorf("failed to look up ingredient: %w", err)
		}

		logger.Debug().Str("ingredient", name).Msg("ingredient does not exist, creating")
		ingredient := entity.Ingredient{ID: uuid.New(), Name: name}
		if err := s.ingredientRepo.Create(ctx, &ingredient); err != nil {
			return nil, fmt.Errorf("failed to create ingredient: %w", err)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}
