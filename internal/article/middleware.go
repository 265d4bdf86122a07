package article

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/model"
)

type ctxKey int8

const articleKey ctxKey = iota

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (h *Handler) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "articleID"))
		if !ok {
			errresponse.Render(w, r, errresponse.ErrArticleNotFound)

			return
		}

		article, err := h.store.GetArticle(r.Context(), id)
		if err != nil {
			errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrArticleNotFound))

			return
		}

		ctx := context.WithValue(r.Context(), articleKey, article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the article loaded by ArticleCtx.
func FromContext(ctx context.Context) (*model.ArticleWithDetails, bool) {
	a, ok := ctx.Value(articleKey).(*model.ArticleWithDetails)

	return a, ok
}
