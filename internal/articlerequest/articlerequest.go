package articlerequest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// ArticleRequest is the request payload for creating an article.
//
// Fields the store owns (id, views, publishedAt, createdAt) are not part of
// the payload and are ignored if sent.
type ArticleRequest struct {
	*model.NewArticle
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	// a.NewArticle is nil if no article fields are sent in the request.
	if a.NewArticle == nil {
		return errors.New("missing required article fields")
	}

	a.Title = strings.TrimSpace(a.Title)
	a.Excerpt = strings.TrimSpace(a.Excerpt)
	a.AuthorID = strings.TrimSpace(a.AuthorID)
	if a.ImageURL != nil && strings.TrimSpace(*a.ImageURL) == "" {
		a.ImageURL = nil
	}

	return a.Validate()
}

// CategoryRequest is the request payload for creating a category.
type CategoryRequest struct {
	*model.NewCategory
}

func (c *CategoryRequest) Bind(r *http.Request) error {
	if c.NewCategory == nil {
		return errors.New("missing required category fields")
	}

	c.Name = strings.TrimSpace(c.Name)
	c.Color = model.Color(strings.ToLower(strings.TrimSpace(string(c.Color))))

	return c.Validate()
}
