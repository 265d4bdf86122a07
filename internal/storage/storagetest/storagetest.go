// Package storagetest opens throwaway in-memory sqlite stores for tests.
package storagetest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/storage"
)

// DSN returns a shared-cache in-memory sqlite DSN unique to the test.
// Open turns foreign keys on.
func DSN(t testing.TB) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// New returns a migrated store that is closed when the test ends.
func New(t testing.TB, opts storage.Options) *storage.Store {
	t.Helper()

	log := zaptest.NewLogger(t).Sugar()
	db, err := storage.Open(context.Background(), storage.OpenConfig{URL: DSN(t)}, log)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	s := storage.New(db, opts, log)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func MustUser(t testing.TB, s *storage.Store, id string) *model.User {
	t.Helper()

	first := "Author " + id
	u, err := s.UpsertUser(context.Background(), model.UpsertUser{ID: id, FirstName: &first})
	if err != nil {
		t.Fatalf("upsert user %s: %v", id, err)
	}

	return u
}

func MustCategory(t testing.TB, s *storage.Store, name string) *model.Category {
	t.Helper()

	c, err := s.CreateCategory(context.Background(), model.NewCategory{
		Name:        name,
		Description: name + " articles",
		Color:       model.ColorBlue,
		Icon:        "fas fa-laptop-code",
	})
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}

	return c
}

func MustArticle(t testing.TB, s *storage.Store, in model.NewArticle) *model.Article {
	t.Helper()

	if in.Excerpt == "" {
		in.Excerpt = "excerpt of " + in.Title
	}
	if in.Content == "" {
		in.Content = "content of " + in.Title
	}

	a, err := s.CreateArticle(context.Background(), in)
	if err != nil {
		t.Fatalf("create article %s: %v", in.Title, err)
	}

	return a
}
