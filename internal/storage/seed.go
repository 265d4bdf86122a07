package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

var seedCategories = []model.NewCategory{
	{Name: "technology", Description: "Coding courses, tools and the tech industry.", Color: model.ColorBlue, Icon: "fas fa-laptop-code"},
	{Name: "lifestyle", Description: "Personal development, health and balance.", Color: model.ColorGreen, Icon: "fas fa-heart"},
	{Name: "business", Description: "Careers, scholarships and growing your income.", Color: model.ColorYellow, Icon: "fas fa-chart-line"},
	{Name: "creative", Description: "Ideas, writing and creative work.", Color: model.ColorPurple, Icon: "fas fa-lightbulb"},
}

const seedAuthorID = "seed-editor"

// Seed inserts development fixtures. Running it twice changes nothing.
func Seed(ctx context.Context, s *Store) error {
	first, last := "Editorial", "Team"
	author, err := s.UpsertUser(ctx, model.UpsertUser{ID: seedAuthorID, FirstName: &first, LastName: &last})
	if err != nil {
		return fmt.Errorf("seed author: %w", err)
	}

	byName := make(map[string]int64, len(seedCategories))
	for _, nc := range seedCategories {
		c, err := s.GetCategoryByName(ctx, nc.Name)
		if errors.Is(err, ErrNotFound) {
			c, err = s.CreateCategory(ctx, nc)
		}
		if err != nil {
			return fmt.Errorf("seed category %s: %w", nc.Name, err)
		}
		byName[c.Name] = c.ID
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&model.Article{}).Count(&existing).Error; err != nil {
		return translate("seed count articles", err)
	}
	if existing > 0 {
		return nil
	}

	articles := []model.NewArticle{
		{
			Title:      "Free coding courses worth your time",
			Excerpt:    "A short list of courses that teach real skills.",
			Content:    "Start with the fundamentals, build projects early and ship often.",
			CategoryID: byName["technology"],
			Published:  true,
			Featured:   true,
		},
		{
			Title:      "How to write a scholarship essay",
			Excerpt:    "Structure, tone and the details reviewers look for.",
			Content:    "Lead with a concrete story and tie it to your goals.",
			CategoryID: byName["business"],
			Published:  true,
		},
		{
			Title:      "Building habits that stick",
			Excerpt:    "Small routines compound.",
			Content:    "Pick one habit, make it obvious and track it daily.",
			CategoryID: byName["lifestyle"],
			Published:  true,
			Featured:   true,
		},
		{
			Title:      "Drafting a creative portfolio",
			Excerpt:    "Work in progress.",
			Content:    "Collect your best pieces before polishing any of them.",
			CategoryID: byName["creative"],
		},
	}
	for _, a := range articles {
		a.AuthorID = author.ID
		if _, err := s.CreateArticle(ctx, a); err != nil {
			return fmt.Errorf("seed article: %w", err)
		}
	}

	s.log.Infow("seeded database", "categories", len(byName), "articles", len(articles))

	return nil
}
