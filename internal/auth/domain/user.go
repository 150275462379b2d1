package domain

import "time"

type User struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"uniqueIndex;not null"` // stored lowercased
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`    // stored lowercased
	FullName   string    `json:"full_name"`
	Password   string    `json:"-" gorm:"not null"` // bcrypt hash, never returned in JSON
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"cover_image,omitempty"`
	// At most one live refresh token per user; empty means no active session.
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to hand to callers: the password hash and the
// stored refresh token are already excluded from JSON via struct tags, but
// clearing them here keeps the in-memory view clean too.
func (u User) Sanitized() User {
	u.Password = ""
	u.RefreshToken = ""
	return u
}
