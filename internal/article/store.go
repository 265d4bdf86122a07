package article

import (
	"context"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// Store is the slice of the repository the article handlers use.
type Store interface {
	GetArticles(ctx context.Context, limit, offset int) ([]model.ArticleWithDetails, error)
	GetFeaturedArticles(ctx context.Context) ([]model.ArticleWithDetails, error)
	GetRecentArticles(ctx context.Context, limit int) ([]model.ArticleWithDetails, error)
	GetArticlesByCategory(ctx context.Context, categoryID int64, limit int) ([]model.ArticleWithDetails, error)
	GetArticle(ctx context.Context, id int64) (*model.ArticleWithDetails, error)
	SearchArticles(ctx context.Context, query string) ([]model.ArticleWithDetails, error)
	FindArticles(ctx context.Context, filter model.ArticleFilter) ([]model.ArticleWithDetails, error)
	CreateArticle(ctx context.Context, article model.NewArticle) (*model.Article, error)
	IncrementViews(ctx context.Context, id int64) error
}
