package domain

import (
	"context"
	"time"
)

// UnknownUserName is shown for users without a display name.
const UnknownUserName = "Unknown"

// User is a profile held by the identity store.
// swagger:model User
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NameOrUnknown returns the display name, falling back to UnknownUserName.
func (u *User) NameOrUnknown() string {
	if u == nil || u.DisplayName == "" {
		return UnknownUserName
	}
	return u.DisplayName
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository reads profiles from the identity store.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}
