package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

var userMutableColumns = []string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalid("get user", errors.New("id is required"))
	}

	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, translate("get user "+id, err)
	}

	return &user, nil
}

// UpsertUser inserts the user, or overwrites every mutable field and
// refreshes updatedAt when the id already exists.
func (s *Store) UpsertUser(ctx context.Context, in model.UpsertUser) (*model.User, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, invalid("upsert user", errors.New("id is required"))
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	user := model.User{
		ID:              in.ID,
		Email:           in.Email,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		ProfileImageURL: in.ProfileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(userMutableColumns),
	}).Create(&user).Error
	if err != nil {
		return nil, translate("upsert user "+in.ID, err)
	}

	return s.GetUser(ctx, in.ID)
}
