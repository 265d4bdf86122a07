// Package storage is the only access path to persisted users, categories
// and articles. It composes joined, filtered and paginated article views.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

const (
	DefaultArticlesLimit = 20
	DefaultRecentLimit   = 10
	DefaultCategoryLimit = 20
)

// Storage lists every repository operation.
type Storage interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpsertUser(ctx context.Context, user model.UpsertUser) (*model.User, error)

	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, category model.NewCategory) (*model.Category, error)
	CountArticlesByCategory(ctx context.Context) (map[int64]int64, error)

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

// Options holds the configurable listing policies.
type Options struct {
	// RecentOrder orders GetRecentArticles by publish time.
	RecentOrder model.SortOrder
	// CategoryIncludesDrafts makes GetArticlesByCategory return unpublished
	// articles too.
	CategoryIncludesDrafts bool
}

func DefaultOptions() Options {
	return Options{
		RecentOrder:            model.SortAscending,
		CategoryIncludesDrafts: true,
	}
}

// Store implements Storage on top of gorm.
type Store struct {
	db   *gorm.DB
	opts Options
	log  *zap.SugaredLogger
	now  func() time.Time
	// lower names the SQL function used for case-insensitive search.
	lower string
}

var _ Storage = (*Store)(nil)

func New(db *gorm.DB, opts Options, log *zap.SugaredLogger) *Store {
	if db == nil {
		panic("storage: nil *gorm.DB")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.RecentOrder == "" {
		opts.RecentOrder = model.SortAscending
	}

	lower := "LOWER"
	if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
		lower = unicodeLower
	}

	return &Store{
		db:    db,
		opts:  opts,
		log:   log,
		now:   time.Now,
		lower: lower,
	}
}

// DB exposes the handle for migrations and seeding.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	return sqlDB.Close()
}
