package service

import (
	"context"
	"fmt"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/repository"
)

// productEditor применяет одно поле из запроса редактирования к товару
type productEditor func(ctx context.Context, p *entity.Product, data *entity.ProductData) error

// defaultEditors возвращает полный конвейер редакторов.
// Порядок фиксирован и определяет, какое поле применяется первым;
// конвейер прогоняется целиком при каждом редактировании.
func (s *ProductService) defaultEditors() []productEditor {
	return []productEditor{
		s.editActive,
		s.editCategory,
		s.editColors,
		s.editCompleteDescription,
		s.editDescription,
		s.editIngredientList,
		s.editName,
		s.editPrice,
		s.editSubCategory,
		s.editTags,
	}
}

func (s *ProductService) editActive(_ context.Context, p *entity.Product, data *entity.ProductData) error {
	p.Active = data.Ativo
	return nil
}

func (s *ProductService) editCategory(ctx context.Context, p *entity.Product, data *entity.ProductData) error {
	category, err := s.categoryRepo.GetByID(ctx, data.Categoria)
	if err != nil {
		if err == repository.ErrCategoryNotFound {
			return NewCategoryNotExistError(data.Categoria)
		}
		return fmt.Errorf("failed to verify category: %w", err)
	}
	p.CategoryID = category.ID
	p.Category = category
	return nil
}

func (s *ProductService) editColors(_ context.Context, p *entity.Product, data *entity.ProductData) error {
	p.MultiColor = entity.ColorMap(data.Cores)
	return nil
}

func (s *ProductService) editCompleteDescription(_ context.Context, p *entity.Product, data *entity.ProductData) error {
	p.CompleteDescription = data.DescricaoCompleta
	return nil
}

func (s *ProductService) editDescription(_ context.Context, p *entity.Product, data *entity.ProductData) error {
	p.Description = data.Descricao
	return nil
}

func (s *ProductService) editIngredientList(ctx context.Context, p *entity.Product, data *entity.ProductData) error {
	ingredients, err := s.normalizer.ResolveIngredients(ctx, data.Ingredientes)
	if err != nil {
		return err
	}
	p.Ingredients = ingredients
	return nil
}

func (s *ProductService) editName(_ context.Context, p *entity.Product, data *entity.ProductData) error {
	p.Rename(data.Nome)
	return nil
}

func (s *ProductService) editPrice(_ context.Context, p *entity.Product, data *entity.ProductData) error {
	p.Price = data.Preco
	return nil
}

// editSubCategory - единственный условный редактор: без sub_categoria
// в запросе текущая подкатегория товара остается прежней
func (s *ProductService) editSubCategory(ctx context.Context, p *entity.Product, data *entity.ProductData) error {
	if data.SubCategoria == nil {
		return nil
	}
	subCategory, err := s.subRepo.GetByID(ctx, *data.SubCategoria)
	if err != nil {
		return err
	}
	p.SubCategoryID = &subCategory.ID
	p.SubCategory = subCategory
	return nil
}

func (s *ProductService) editTags(ctx context.Context, p *entity.Product, data *entity.ProductData) error {
	tags, err := s.normalizer.ResolveTags(ctx, data.Tags)
	if err != nil {
		return err
	}
	p.Tags = tags
	return nil
}
