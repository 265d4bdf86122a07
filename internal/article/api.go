package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/articlerequest"
	"github.com/SergeyParamoshkin/articles/internal/articleresponse"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/logctx"
	"github.com/SergeyParamoshkin/articles/internal/model"
)

const (
	defaultListLimit     = 20
	defaultRecentLimit   = 10
	defaultCategoryLimit = 20
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Routes is the "articles" resource, mounted at /articles.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListArticles)                             // GET /articles?search=&category=
	r.Post("/", h.CreateArticle)                           // POST /articles
	r.Get("/featured", h.FeaturedArticles)                 // GET /articles/featured
	r.Get("/recent", h.RecentArticles)                     // GET /articles/recent
	r.Get("/category/{categoryID}", h.ArticlesByCategory)  // GET /articles/category/3
	r.With(h.ArticleCtx).Get("/{articleID}", h.GetArticle) // GET /articles/123
	r.Post("/{articleID}/views", h.IncrementViews)         // POST /articles/123/views

	return r
}

// ListArticles serves the bare resource. search and category compose:
// both together search published articles inside that category.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	p, err := parseListParams(r.URL.Query(), defaultListLimit)
	if err != nil {
		errresponse.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	ctx := r.Context()

	var rows []model.ArticleWithDetails
	switch {
	case p.search != "" && p.categoryID != nil:
		rows, err = h.store.FindArticles(ctx, model.ArticleFilter{
			Published:  model.Bool(true),
			CategoryID: p.categoryID,
			Search:     p.search,
			Order:      model.SortAscending,
			Limit:      p.limit,
			Offset:     p.offset,
		})
	case p.search != "":
		rows, err = h.store.SearchArticles(ctx, p.search)
	case p.categoryID != nil:
		rows, err = h.store.GetArticlesByCategory(ctx, *p.categoryID, p.limit)
	default:
		rows, err = h.store.GetArticles(ctx, p.limit, p.offset)
	}

	h.renderList(w, r, rows, err)
}

// Search serves GET /search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.SearchArticles(r.Context(), r.URL.Query().Get("q"))
	h.renderList(w, r, rows, err)
}

func (h *Handler) FeaturedArticles(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.GetFeaturedArticles(r.Context())
	h.renderList(w, r, rows, err)
}

func (h *Handler) RecentArticles(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query(), defaultRecentLimit)
	if err != nil {
		errresponse.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	rows, err := h.store.GetRecentArticles(r.Context(), limit)
	h.renderList(w, r, rows, err)
}

func (h *Handler) ArticlesByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "categoryID"))
	if !ok {
		errresponse.Render(w, r, errresponse.ErrCategoryNotFound)

		return
	}

	limit, err := parseLimit(r.URL.Query(), defaultCategoryLimit)
	if err != nil {
		errresponse.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	rows, err := h.store.GetArticlesByCategory(r.Context(), id, limit)
	h.renderList(w, r, rows, err)
}

// GetArticle returns the specific Article loaded by ArticleCtx.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := FromContext(r.Context())
	if !ok {
		errresponse.Render(w, r, errresponse.ErrArticleNotFound)

		return
	}

	errresponse.Render(w, r, articleresponse.NewArticleResponse(article))
}

// CreateArticle persists the posted Article and returns it
// back to the client as an acknowledgement.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	article, err := h.store.CreateArticle(r.Context(), *data.NewArticle)
	if err != nil {
		errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrNotFound))

		return
	}

	logctx.FromContext(r.Context()).Infow("article created",
		"article_id", article.ID, "published", article.Published)

	render.Status(r, http.StatusCreated)
	errresponse.Render(w, r, articleresponse.NewCreatedResponse(article))
}

// IncrementViews records one view of the article.
func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "articleID"))
	if !ok {
		errresponse.Render(w, r, errresponse.ErrArticleNotFound)

		return
	}

	if err := h.store.IncrementViews(r.Context(), id); err != nil {
		errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrArticleNotFound))

		return
	}

	render.NoContent(w, r)
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, rows []model.ArticleWithDetails, err error) {
	if err != nil {
		errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrNotFound))

		return
	}

	errresponse.RenderList(w, r, articleresponse.NewArticleListResponse(rows))
}
