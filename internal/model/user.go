package model

import "time"

// User is an author identity issued by the external identity provider.
type User struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Email           *string   `json:"email" gorm:"uniqueIndex"`
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UpsertUser is the profile payload pushed on login.
type UpsertUser struct {
	ID              string  `json:"id"`
	Email           *string `json:"email,omitempty"`
	FirstName       *string `json:"firstName,omitempty"`
	LastName        *string `json:"lastName,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}
