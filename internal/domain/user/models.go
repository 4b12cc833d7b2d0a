package user

import (
	"errors"
	"strings"
	"time"

	"moneytracker/internal/shared/validation"
)

var ErrNotFound = errors.New("user not found")

// User is the profile record for a Firebase identity. FirebaseUID is the
// owner id every other resource is keyed by.
type User struct {
	ID          string
	FirebaseUID string
	Email       string
	DisplayName *string
	AvatarURL   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type UpsertParams struct {
	FirebaseUID string
	Email       string
}

type UpdateProfileParams struct {
	DisplayName *string
	AvatarURL   *string
}

func (p *UpdateProfileParams) Validate() error {
	if p.DisplayName == nil && p.AvatarURL == nil {
		return validation.New("displayName or avatarUrl is required")
	}
	if p.DisplayName != nil && len(strings.TrimSpace(*p.DisplayName)) > 100 {
		return validation.New("displayName must be 100 characters or less")
	}
	if p.AvatarURL != nil && *p.AvatarURL != "" &&
		!strings.HasPrefix(*p.AvatarURL, "https://") && !strings.HasPrefix(*p.AvatarURL, "http://") {
		return validation.New("avatarUrl must be an http(s) URL")
	}
	return nil
}
