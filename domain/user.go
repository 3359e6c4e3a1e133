package domain

import (
	"regexp"

	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,24}$`)

// User represents a registered identity in the marketplace.
type User struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	EncodedPassword string `json:"-"`
	Enabled         bool   `json:"enabled"`
	CreateTime      int64  `json:"create_time"`
}

// NewUser builds a validated user, assigning its id and enabling it.
// The password must already be encoded; raw credentials never reach here.
func NewUser(username, encodedPassword string, now int64) (*User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, NewError(ErrCodeInvalid, "username must be 3-24 alphanumeric or underscore characters")
	}
	if encodedPassword == "" {
		return nil, NewError(ErrCodeInvalid, "encoded password must not be empty")
	}
	return &User{
		ID:              uuid.NewString(),
		Username:        username,
		EncodedPassword: encodedPassword,
		Enabled:         true,
		CreateTime:      now,
	}, nil
}

// ValidUsername reports whether the username satisfies the naming rules.
func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

func (u *User) IsEnabled() bool {
	return u != nil && u.Enabled
}
