package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/articles/internal/category"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/storage"
	"github.com/SergeyParamoshkin/articles/internal/storage/storagetest"
)

type categoryJSON struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	ArticleCount *int64 `json:"articleCount"`
}

func newServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()

	s := storagetest.New(t, storage.DefaultOptions())
	srv := httptest.NewServer(category.NewHandler(s).Routes())
	t.Cleanup(srv.Close)

	return srv, s
}

func get(t *testing.T, url string, v interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if v != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}

	return resp.StatusCode
}

func TestListCategories(t *testing.T) {
	srv, s := newServer(t)
	tech := storagetest.MustCategory(t, s, "Technology")
	biz := storagetest.MustCategory(t, s, "Business")
	u := storagetest.MustUser(t, s, "u1")
	storagetest.MustArticle(t, s, model.NewArticle{Title: "a", CategoryID: tech.ID, AuthorID: u.ID, Published: true})
	storagetest.MustArticle(t, s, model.NewArticle{Title: "b", CategoryID: tech.ID, AuthorID: u.ID})

	var plain []categoryJSON
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/", &plain))
	require.Len(t, plain, 2)
	assert.Equal(t, tech.ID, plain[0].ID)
	assert.Equal(t, biz.ID, plain[1].ID)
	assert.Nil(t, plain[0].ArticleCount)

	var counted []categoryJSON
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/?counts=true", &counted))
	require.Len(t, counted, 2)
	require.NotNil(t, counted[0].ArticleCount)
	require.NotNil(t, counted[1].ArticleCount)
	assert.EqualValues(t, 1, *counted[0].ArticleCount, "drafts are not counted")
	assert.EqualValues(t, 0, *counted[1].ArticleCount)
}

func TestListCategoriesEmpty(t *testing.T) {
	srv, _ := newServer(t)

	var got []categoryJSON
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/", &got))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetCategory(t *testing.T) {
	srv, s := newServer(t)
	tech := storagetest.MustCategory(t, s, "Technology")

	var got categoryJSON
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/"+strconv.FormatInt(tech.ID, 10), &got))
	assert.Equal(t, "Technology", got.Name)
	assert.Equal(t, "blue", got.Color)
	assert.Equal(t, "fas fa-laptop-code", got.Icon)

	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/9999", nil))
	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/abc", nil))
}

func TestGetCategoryByName(t *testing.T) {
	srv, s := newServer(t)
	storagetest.MustCategory(t, s, "Technology")

	var got categoryJSON
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/name/Technology", &got))
	assert.Equal(t, "Technology", got.Name)

	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/name/technology", nil), "names match exactly")
	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/name/Design", nil))
}

func TestCreateCategory(t *testing.T) {
	srv, _ := newServer(t)

	post := func(body string) *http.Response {
		resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })

		return resp
	}

	resp := post(`{"name":"Creative","description":"Ideas","color":"PURPLE","icon":"fas fa-lightbulb"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got categoryJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, "purple", got.Color)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"duplicate", `{"name":"Creative","description":"again","color":"blue","icon":"x"}`, http.StatusConflict},
		{"bad color", `{"name":"Other","description":"d","color":"red","icon":"x"}`, http.StatusBadRequest},
		{"missing name", `{"description":"d","color":"blue","icon":"x"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(tt.body).StatusCode)
		})
	}
}
