// Package errresponse holds the error payloads rendered by every handler.
package errresponse

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/logctx"
	"github.com/SergeyParamoshkin/articles/internal/storage"
)

// ErrResponse renderer type for handling all sorts of errors.
//
// Err is the low-level error and never leaves the process; Message is the
// user-level text. ErrorText is only filled for client mistakes.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	Message   string `json:"message"`
	ErrorText string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Message:        "Invalid request",
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		Message:        "Resource already exists",
	}
}

func ErrUnprocessable(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		Message:        "Referenced resource does not exist",
	}
}

func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        "Internal server error",
	}
}

var (
	ErrNotFound         = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "Resource not found"}
	ErrArticleNotFound  = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "Article not found"}
	ErrCategoryNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "Category not found"}
	ErrUserNotFound     = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "User not found"}
	ErrMethodNotAllowed = &ErrResponse{HTTPStatusCode: http.StatusMethodNotAllowed, Message: "Method not allowed"}
)

// FromStorage maps a storage error onto a response. notFound is used for
// storage.ErrNotFound.
func FromStorage(err error, notFound *ErrResponse) render.Renderer {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return notFound
	case errors.Is(err, storage.ErrInvalidArgument):
		return ErrInvalidRequest(err)
	case errors.Is(err, storage.ErrDuplicate):
		return ErrConflict(err)
	case errors.Is(err, storage.ErrForeignKey):
		return ErrUnprocessable(err)
	}

	return ErrInternal(err)
}

// Render writes rd and logs server-side failures with the request logger.
func Render(w http.ResponseWriter, r *http.Request, rd render.Renderer) {
	logger := logctx.FromContext(r.Context())

	if e, ok := rd.(*ErrResponse); ok && e.HTTPStatusCode >= http.StatusInternalServerError {
		logger.Errorw("request failed", "status", e.HTTPStatusCode, zap.Error(e.Err))
	}

	if err := render.Render(w, r, rd); err != nil {
		logger.Errorw("render response", zap.Error(err))
	}
}

// RenderList writes a JSON array, falling back to a 500 payload.
func RenderList(w http.ResponseWriter, r *http.Request, l []render.Renderer) {
	if err := render.RenderList(w, r, l); err != nil {
		Render(w, r, ErrInternal(err))
	}
}

// NotFound and MethodNotAllowed plug into chi.
func NotFound(w http.ResponseWriter, r *http.Request) { Render(w, r, ErrNotFound) }

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) { Render(w, r, ErrMethodNotAllowed) }

// Respond replaces render.Respond. A bare error value is never serialised;
// the client gets the generic 500 body and the error goes to the log.
func Respond(w http.ResponseWriter, r *http.Request, v interface{}) {
	if err, ok := v.(error); ok {
		logctx.FromContext(r.Context()).Errorw("responding with raw error", zap.Error(err))

		render.Status(r, http.StatusInternalServerError)
		render.DefaultResponder(w, r, ErrInternal(err))

		return
	}

	render.DefaultResponder(w, r, v)
}

// Recoverer is middleware.Recoverer with a JSON body. http.ErrAbortHandler
// is re-panicked so the server can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint
				panic(rvr)
			}

			logctx.FromContext(r.Context()).Errorw("panic recovered",
				"panic", fmt.Sprint(rvr), zap.StackSkip("stack", 2))

			if r.Header.Get("Connection") != "Upgrade" {
				Render(w, r, ErrInternal(fmt.Errorf("panic: %v", rvr)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
