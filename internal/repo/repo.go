package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type GormRepo struct {
	DB *gorm.DB
}

// isUniqueViolation covers both the translated gorm error and the raw
// driver messages (postgres in production, sqlite in tests).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
