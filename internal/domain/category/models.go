package category

import (
	"errors"
	"strings"
	"time"

	"moneytracker/internal/shared/validation"
)

var (
	// ErrDuplicate is returned by Repository.Create when the user already has
	// a category with the same name.
	ErrDuplicate = errors.New("category already exists")
)

// UnknownName is shown for budgets whose category record is missing.
const UnknownName = "Unknown"

type Category struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}

// NormalizeName trims the name and checks it is usable as a lookup key.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validation.New("category is required")
	}
	if len(name) > 100 {
		return "", validation.New("category must be 100 characters or less")
	}
	return name, nil
}
