package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPredicate folds both the columns and the pattern with the same SQL
// function.
func searchPredicate(lower string) string {
	return fmt.Sprintf(`(%[1]s(articles.title) LIKE %[1]s(?) ESCAPE '\'`+
		` OR %[1]s(articles.excerpt) LIKE %[1]s(?) ESCAPE '\'`+
		` OR %[1]s(articles.content) LIKE %[1]s(?) ESCAPE '\')`, lower)
}

// GetArticles lists published articles by publish time, oldest first.
func (s *Store) GetArticles(ctx context.Context, limit, offset int) ([]model.ArticleWithDetails, error) {
	if limit <= 0 {
		limit = DefaultArticlesLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.FindArticles(ctx, model.ArticleFilter{
		Published: model.Bool(true),
		Order:     model.SortAscending,
		Limit:     limit,
		Offset:    offset,
	})
}

// GetFeaturedArticles lists every featured article regardless of publish
// status.
func (s *Store) GetFeaturedArticles(ctx context.Context) ([]model.ArticleWithDetails, error) {
	return s.FindArticles(ctx, model.ArticleFilter{
		Featured: model.Bool(true),
		Order:    model.SortAscending,
	})
}

func (s *Store) GetRecentArticles(ctx context.Context, limit int) ([]model.ArticleWithDetails, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	return s.FindArticles(ctx, model.ArticleFilter{
		Published: model.Bool(true),
		Order:     s.opts.RecentOrder,
		Limit:     limit,
	})
}

// GetArticlesByCategory lists a category's articles. Drafts are included
// unless Options.CategoryIncludesDrafts is off.
func (s *Store) GetArticlesByCategory(ctx context.Context, categoryID int64, limit int) ([]model.ArticleWithDetails, error) {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}

	filter := model.ArticleFilter{
		CategoryID: model.Int64(categoryID),
		Order:      model.SortAscending,
		Limit:      limit,
	}
	if !s.opts.CategoryIncludesDrafts {
		filter.Published = model.Bool(true)
	}

	return s.FindArticles(ctx, filter)
}

// SearchArticles matches query case-insensitively as a substring of the
// title, excerpt or content of published articles.
func (s *Store) SearchArticles(ctx context.Context, query string) ([]model.ArticleWithDetails, error) {
	return s.FindArticles(ctx, model.ArticleFilter{
		Published: model.Bool(true),
		Search:    query,
		Order:     model.SortAscending,
	})
}

func (s *Store) GetArticle(ctx context.Context, id int64) (*model.ArticleWithDetails, error) {
	var row model.ArticleWithDetails

	err := s.withDetails(ctx).Where("articles.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, translate(fmt.Sprintf("get article %d", id), err)
	}

	if !row.Complete() {
		s.log.Errorw("article join incomplete", "article_id", row.ID,
			"category_id", row.CategoryID, "author_id", row.AuthorID)

		return nil, fmt.Errorf("get article %d: %w", id, ErrIntegrity)
	}

	return &row, nil
}

// FindArticles is the query composer behind every article listing.
func (s *Store) FindArticles(ctx context.Context, f model.ArticleFilter) ([]model.ArticleWithDetails, error) {
	q := s.withDetails(ctx)

	if f.Published != nil {
		q = q.Where("articles.published = ?", *f.Published)
	}
	if f.Featured != nil {
		q = q.Where("articles.featured = ?", *f.Featured)
	}
	if f.CategoryID != nil {
		q = q.Where("articles.category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		q = q.Where(searchPredicate(s.lower), pattern, pattern, pattern)
	}

	dir := "ASC"
	if f.Order == model.SortDescending {
		dir = "DESC"
	}
	// drafts have no publish time and sort last in either direction
	q = q.Order("articles.published_at IS NULL").
		Order("articles.published_at " + dir).
		Order("articles.id " + dir)

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []model.ArticleWithDetails
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate("find articles", err)
	}

	return s.complete(rows), nil
}

// CreateArticle stamps publishedAt only when the article is created
// published.
func (s *Store) CreateArticle(ctx context.Context, in model.NewArticle) (*model.Article, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid("create article", err)
	}

	// postgres keeps microseconds
	now := s.now().UTC().Truncate(time.Microsecond)
	article := model.Article{
		Title:      in.Title,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		CategoryID: in.CategoryID,
		AuthorID:   in.AuthorID,
		Published:  in.Published,
		Featured:   in.Featured,
		CreatedAt:  now,
	}
	if in.Published {
		article.PublishedAt = &now
	}

	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, translate(fmt.Sprintf("create article %q", in.Title), err)
	}

	return &article, nil
}

// IncrementViews adds one view in a single UPDATE so concurrent calls
// never lose increments.
func (s *Store) IncrementViews(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return translate(fmt.Sprintf("increment views %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("increment views %d: %w", id, ErrNotFound)
	}

	return nil
}

func (s *Store) withDetails(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&model.ArticleWithDetails{}).
		Joins("Category").
		Joins("Author")
}

// complete drops rows whose joins did not resolve. The foreign keys make
// this unreachable unless the schema was tampered with.
func (s *Store) complete(rows []model.ArticleWithDetails) []model.ArticleWithDetails {
	out := make([]model.ArticleWithDetails, 0, len(rows))
	for _, row := range rows {
		if !row.Complete() {
			s.log.Errorw("article join incomplete, skipping row",
				"article_id", row.ID, "error", ErrIntegrity)

			continue
		}
		out = append(out, row)
	}

	return out
}

// IsNotFound is shorthand for errors.Is(err, ErrNotFound).
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
