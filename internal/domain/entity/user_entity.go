package entity

import "time"

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash; the raw password is never persisted.
type User struct {
	ID           string
	Email        string
	Username     string
	Password     string
	ProfileImage string
	CreatedAt    time.Time
}

// Public returns the user projection safe to include in API responses.
// The password hash is never part of it.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"profileImage": u.ProfileImage,
	}
}
