package storage

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// GetCategories returns every category in insertion order.
func (s *Store) GetCategories(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, translate("list categories", err)
	}

	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&category).Error; err != nil {
		return nil, translate(fmt.Sprintf("get category %d", id), err)
	}

	return &category, nil
}

// GetCategoryByName matches name exactly; callers normalise case themselves.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := s.db.WithContext(ctx).Where("name = ?", name).Take(&category).Error; err != nil {
		return nil, translate(fmt.Sprintf("get category %q", name), err)
	}

	return &category, nil
}

func (s *Store) CreateCategory(ctx context.Context, in model.NewCategory) (*model.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid("create category", err)
	}

	category := model.Category{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, translate(fmt.Sprintf("create category %q", in.Name), err)
	}

	return &category, nil
}

// CountArticlesByCategory returns the number of published articles per
// category id. Categories without published articles are absent.
func (s *Store) CountArticlesByCategory(ctx context.Context) (map[int64]int64, error) {
	var rows []struct {
		CategoryID int64
		Total      int64
	}

	err := s.db.WithContext(ctx).
		Model(&model.Article{}).
		Select("category_id, COUNT(*) AS total").
		Where("published = ?", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate("count articles by category", err)
	}

	counts := make(map[int64]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Total
	}

	return counts, nil
}
