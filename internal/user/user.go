// Package user serves author profiles and the identity-provider upsert hook.
package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/logctx"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/userpayload"
)

type Store interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpsertUser(ctx context.Context, user model.UpsertUser) (*model.User, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{userID}", h.GetUser)
	r.Put("/{userID}", h.UpsertUser)

	return r
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrUserNotFound))

		return
	}

	errresponse.Render(w, r, userpayload.NewUserPayloadResponse(u))
}

// UpsertUser is called by the identity provider on every login.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.UpsertRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}
	data.ID = chi.URLParam(r, "userID")

	u, err := h.store.UpsertUser(r.Context(), data.UpsertUser)
	if err != nil {
		errresponse.Render(w, r, errresponse.FromStorage(err, errresponse.ErrUserNotFound))

		return
	}

	logctx.FromContext(r.Context()).Infow("user upserted", "user_id", u.ID)

	errresponse.Render(w, r, userpayload.NewUserPayloadResponse(u))
}
