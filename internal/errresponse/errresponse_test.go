package errresponse

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/articles/internal/storage"
)

func TestFromStorage(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("get article 7: %w", storage.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("create: %w", storage.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("create: %w", storage.ErrDuplicate), http.StatusConflict},
		{fmt.Errorf("create: %w", storage.ErrForeignKey), http.StatusUnprocessableEntity},
		{fmt.Errorf("get: %w", storage.ErrIntegrity), http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rd := FromStorage(tt.err, ErrArticleNotFound)
			e, ok := rd.(*ErrResponse)
			require.True(t, ok)
			assert.Equal(t, tt.want, e.HTTPStatusCode)
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Render(rec, req, ErrInternal(errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}

func TestRespondNeverSerialisesErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(rec, req, errors.New("secret detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = httptest.NewRecorder()
	Respond(rec, httptest.NewRequest(http.MethodGet, "/", nil), render.M{"status": "ok"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRecovererPassesAbortHandler(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
