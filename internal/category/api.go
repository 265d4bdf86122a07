// Package category serves the categories resource.
package category

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/articlerequest"
	"github.com/SergeyParamoshkin/articles/internal/articleresponse"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/logctx"
	"github.com/SergeyParamoshkin/articles/internal/model"
)

type Store interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, category model.NewCategory) (*model.Category, error)
	CountArticlesByCategory(ctx context.Context) (map[int64]int64, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCategories)
	r.Post("/", h.CreateCategory)
	r.Get("/name/{name}", h.GetCategoryByName)
	r.Get("/{categoryID}", h.GetCategory)

	return r
}

// ListCategories adds articleCount to each category when ?counts=true.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.GetCategories(r.Context())
	if err != nil {
		errresponse.Render(w, r, errresponse.ErrInternal(err))

		return
	}

	var counts map[int64]int64
	if withCounts, _ := strconv.ParseBool(r.URL.Query().Get("counts")); withCounts {
		if counts, err = h.store.CountArticlesByCategory(r.Context()); err != nil {
			errresponse.Render(w, r, errresponse.ErrInternal(err))

			return
		}
	}

	errresponse.RenderList(w, r, articleresponse.NewCategoryListResponse(categories, counts))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		errresponse.Render(w, r, errresponse.ErrCategoryNotFound)

		return
	}

	category, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrCategoryNotFound))

		return
	}

	errresponse.Render(w, r, &articleresponse.CategoryResponse{Category: category})
}

// GetCategoryByName matches the path segment exactly, as stored.
func (h *Handler) GetCategoryByName(w http.ResponseWriter, r *http.Request) {
	category, err := h.store.GetCategoryByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrCategoryNotFound))

		return
	}

	errresponse.Render(w, r, &articleresponse.CategoryResponse{Category: category})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.CategoryRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	category, err := h.store.CreateCategory(r.Context(), *data.NewCategory)
	if err != nil {
		errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrCategoryNotFound))

		return
	}

	logctx.FromContext(r.Context()).Infow("category created", "category_id", category.ID, "name", category.Name)

	render.Status(r, http.StatusCreated)
	errresponse.Render(w, r, &articleresponse.CategoryResponse{Category: category})
}
