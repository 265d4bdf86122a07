package model

import (
	"errors"
	"fmt"
	"strings"
)

// Color is the presentation tag of a category.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
)

func (c Color) Valid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorYellow, ColorPurple:
		return true
	}

	return false
}

type Category struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;uniqueIndex"`
	Description string `json:"description" gorm:"not null"`
	Color       Color  `json:"color" gorm:"not null"`
	Icon        string `json:"icon" gorm:"not null"`
}

func (Category) TableName() string { return "categories" }

// NewCategory is the insert payload for a category.
type NewCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       Color  `json:"color"`
	Icon        string `json:"icon"`
}

func (c NewCategory) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if !c.Color.Valid() {
		errs = append(errs, fmt.Errorf("color %q is not one of blue, green, yellow, purple", c.Color))
	}
	if strings.TrimSpace(c.Icon) == "" {
		errs = append(errs, errors.New("icon is required"))
	}

	return errors.Join(errs...)
}
