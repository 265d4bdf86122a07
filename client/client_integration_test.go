//go:build integration

// Runs against a server booted with DB_SEED=1 on localhost:3333.
package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var c = Client{
	Addr:   "http://localhost:3333",
	Client: http.Client{},
}

func TestPing(t *testing.T) {
	s, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", s)
}

func TestSeededTechnology(t *testing.T) {
	ctx := context.Background()

	tech, err := c.CategoryByName(ctx, "technology")
	require.NoError(t, err)

	rows, err := c.ArticlesByCategory(ctx, tech.ID)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	before := rows[0].Views
	require.NoError(t, c.IncrementViews(ctx, rows[0].ID))

	got, err := c.Article(ctx, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, before+1, got.Views)
	assert.Equal(t, "technology", got.Category.Name)
}
