package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is a server-side login. A session is live while revoked_at is
// null and expires_at is in the future; the raw token is handed out once
// at login and never re-derivable.
type Session struct {
	ID        int64      `json:"-"`
	UserID    int64      `json:"-"`
	Token     string     `json:"-"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"-"`
}

type UserProfile struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	Bio              string     `json:"bio"`
	Birthdate        *time.Time `json:"birthdate"`
	ProfilePicture   string     `json:"profile_picture"`
	TwoFactorEnabled bool       `json:"two_factor_enabled"`
}
