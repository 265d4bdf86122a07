package model

import (
	"errors"
	"strings"
	"time"
)

// Article data model. Category and author are referenced by id only; see
// ArticleWithDetails for the joined read view.
type Article struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Excerpt     string     `json:"excerpt" gorm:"not null"`
	Content     string     `json:"content" gorm:"not null"`
	ImageURL    *string    `json:"imageUrl"`
	CategoryID  int64      `json:"categoryId" gorm:"not null;index"`
	AuthorID    string     `json:"authorId" gorm:"not null;index"`
	Published   bool       `json:"published" gorm:"not null;default:false"`
	Featured    bool       `json:"featured" gorm:"not null;default:false"`
	Views       int64      `json:"views" gorm:"not null;default:0"`
	PublishedAt *time.Time `json:"publishedAt" gorm:"index"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (Article) TableName() string { return "articles" }

// ArticleWithDetails is an Article joined with its category and author at
// read time. It maps onto the articles table and carries the foreign keys.
type ArticleWithDetails struct {
	Article

	Category Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Author   User     `json:"author" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (ArticleWithDetails) TableName() string { return "articles" }

// Complete reports whether both joins resolved.
func (a ArticleWithDetails) Complete() bool {
	return a.Category.ID != 0 && a.Author.ID != ""
}

// NewArticle is the insert payload for an article.
type NewArticle struct {
	Title      string  `json:"title"`
	Excerpt    string  `json:"excerpt"`
	Content    string  `json:"content"`
	ImageURL   *string `json:"imageUrl,omitempty"`
	CategoryID int64   `json:"categoryId"`
	AuthorID   string  `json:"authorId"`
	Published  bool    `json:"published"`
	Featured   bool    `json:"featured"`
}

func (a NewArticle) Validate() error {
	var errs []error
	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if strings.TrimSpace(a.Excerpt) == "" {
		errs = append(errs, errors.New("excerpt is required"))
	}
	if strings.TrimSpace(a.Content) == "" {
		errs = append(errs, errors.New("content is required"))
	}
	if a.CategoryID <= 0 {
		errs = append(errs, errors.New("categoryId must be positive"))
	}
	if strings.TrimSpace(a.AuthorID) == "" {
		errs = append(errs, errors.New("authorId is required"))
	}

	return errors.Join(errs...)
}

// SortOrder is the direction articles are ordered by publish time.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc" in any case.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAscending:
		return SortAscending, nil
	case SortDescending:
		return SortDescending, nil
	}

	return "", errors.New("sort order must be asc or desc")
}

// ArticleFilter composes an article listing. Nil pointers and the empty
// search leave that predicate out; Limit 0 means unlimited.
type ArticleFilter struct {
	Published  *bool
	Featured   *bool
	CategoryID *int64
	Search     string
	Order      SortOrder
	Limit      int
	Offset     int
}

// Bool returns a pointer to b, for ArticleFilter fields.
func Bool(b bool) *bool { return &b }

// Int64 returns a pointer to n, for ArticleFilter fields.
func Int64(n int64) *int64 { return &n }
