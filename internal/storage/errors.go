package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by single-row lookups that match nothing.
	ErrNotFound = errors.New("storage: record not found")
	// ErrDuplicate wraps unique constraint violations.
	ErrDuplicate = errors.New("storage: duplicate entry")
	// ErrForeignKey wraps foreign key violations.
	ErrForeignKey = errors.New("storage: foreign key violation")
	// ErrInvalidArgument is returned before touching the store.
	ErrInvalidArgument = errors.New("storage: invalid argument")
	// ErrIntegrity means a joined row is missing despite the foreign keys.
	ErrIntegrity = errors.New("storage: integrity violation")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver errors onto the package sentinels, keeping the
// original error in the chain.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isDuplicate(err):
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	case isForeignKey(err):
		return fmt.Errorf("%s: %w: %w", op, ErrForeignKey, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func invalid(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
}
