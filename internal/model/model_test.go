package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticleValidate(t *testing.T) {
	valid := NewArticle{Title: "A", Excerpt: "e", Content: "full text", CategoryID: 1, AuthorID: "u1"}
	require.NoError(t, valid.Validate())

	err := NewArticle{Title: " ", CategoryID: 0}.Validate()
	require.Error(t, err)
	for _, want := range []string{"title", "excerpt", "content", "categoryId", "authorId"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestNewCategoryValidate(t *testing.T) {
	ok := NewCategory{Name: "Technology", Description: "d", Color: ColorBlue, Icon: "fas fa-laptop-code"}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Color = "red"
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"red"`)
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder(" DESC ")
	require.NoError(t, err)
	assert.Equal(t, SortDescending, o)

	o, err = ParseSortOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, SortAscending, o)

	_, err = ParseSortOrder("newest")
	assert.Error(t, err)
}

func TestArticleWithDetailsJSON(t *testing.T) {
	published := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a := ArticleWithDetails{
		Article: Article{
			ID: 7, Title: "A", Excerpt: "e", Content: "c",
			CategoryID: 3, AuthorID: "u1", Published: true, PublishedAt: &published,
		},
		Category: Category{ID: 3, Name: "Technology", Color: ColorBlue},
		Author:   User{ID: "u1"},
	}

	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.EqualValues(t, 7, got["id"])
	assert.EqualValues(t, 3, got["categoryId"])
	assert.Equal(t, "u1", got["authorId"])
	assert.Equal(t, "2025-03-01T10:00:00Z", got["publishedAt"])
	assert.Equal(t, "Technology", got["category"].(map[string]any)["name"])
	assert.Equal(t, "u1", got["author"].(map[string]any)["id"])
	assert.True(t, a.Complete())
	assert.False(t, ArticleWithDetails{Article: a.Article}.Complete())
}
