package articleresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/userpayload"
)

// ArticleResponse is the response payload for an article.
//
// Render is called top-down, first on the response itself and then on each
// field that is a Renderer, like a http handler middleware chain.
type ArticleResponse struct {
	*model.Article

	Category *model.Category         `json:"category,omitempty"`
	Author   *userpayload.UserPayload `json:"author,omitempty"`
}

// NewArticleResponse renders an article with its joined category and author.
func NewArticleResponse(a *model.ArticleWithDetails) *ArticleResponse {
	return &ArticleResponse{
		Article:  &a.Article,
		Category: &a.Category,
		Author:   userpayload.NewUserPayloadResponse(&a.Author),
	}
}

// NewCreatedResponse renders a freshly inserted article, which has no joins.
func NewCreatedResponse(a *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: a}
}

func NewArticleListResponse(articles []model.ArticleWithDetails) []render.Renderer {
	list := make([]render.Renderer, 0, len(articles))
	for i := range articles {
		list = append(list, NewArticleResponse(&articles[i]))
	}

	return list
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// CategoryResponse optionally carries the number of published articles.
type CategoryResponse struct {
	*model.Category

	ArticleCount *int64 `json:"articleCount,omitempty"`
}

func (rd *CategoryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// NewCategoryListResponse attaches counts when counts is non-nil.
func NewCategoryListResponse(categories []model.Category, counts map[int64]int64) []render.Renderer {
	list := make([]render.Renderer, 0, len(categories))
	for i := range categories {
		resp := &CategoryResponse{Category: &categories[i]}
		if counts != nil {
			n := counts[categories[i].ID]
			resp.ArticleCount = &n
		}
		list = append(list, resp)
	}

	return list
}
