package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/articles/internal/storage"
	"github.com/SergeyParamoshkin/articles/internal/storage/storagetest"
	"github.com/SergeyParamoshkin/articles/internal/user"
)

type userJSON struct {
	ID          string  `json:"id"`
	Email       *string `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	DisplayName string  `json:"displayName"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	s := storagetest.New(t, storage.DefaultOptions())
	srv := httptest.NewServer(user.NewHandler(s).Routes())
	t.Cleanup(srv.Close)

	return srv
}

func put(t *testing.T, url, body string) (*http.Response, userJSON) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPut, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var got userJSON
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	}

	return resp, got
}

func TestUpsertAndGetUser(t *testing.T) {
	srv := newServer(t)

	resp, got := put(t, srv.URL+"/auth0-42", `{"id":"ignored","email":" ada@example.com ","firstName":"Ada","lastName":"Lovelace"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "auth0-42", got.ID, "id comes from the path")
	require.NotNil(t, got.Email)
	assert.Equal(t, "ada@example.com", *got.Email)
	assert.Equal(t, "Ada Lovelace", got.DisplayName)

	resp, got = put(t, srv.URL+"/auth0-42", `{"firstName":"Augusta"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, got.Email, "every mutable field is overwritten")
	assert.Nil(t, got.LastName)
	assert.Equal(t, "Augusta", got.DisplayName)

	r, err := http.Get(srv.URL + "/auth0-42")
	require.NoError(t, err)
	defer r.Body.Close()
	require.Equal(t, http.StatusOK, r.StatusCode)

	var fetched userJSON
	require.NoError(t, json.NewDecoder(r.Body).Decode(&fetched))
	assert.Equal(t, "auth0-42", fetched.ID)
	assert.Equal(t, "Augusta", fetched.DisplayName)
}

func TestUserDisplayNameFallsBackToID(t *testing.T) {
	srv := newServer(t)

	resp, got := put(t, srv.URL+"/anon", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "anon", got.DisplayName)
}

func TestUpsertUserErrors(t *testing.T) {
	srv := newServer(t)

	resp, _ := put(t, srv.URL+"/u1", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = put(t, srv.URL+"/u1", `{"email":"shared@example.com"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = put(t, srv.URL+"/u2", `{"email":"shared@example.com"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetUserNotFound(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/nobody")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "User not found", body["message"])
}
