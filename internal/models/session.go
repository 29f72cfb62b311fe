package models

import "time"

// Session is the server-side record behind a user JWT. The token column
// stores the exact signed token string; deleting the row revokes the token
// regardless of its unexpired signature.
type Session struct {
	ID        string   `gorm:"primaryKey;size:36"`
	Token     string   `gorm:"uniqueIndex;size:512;not null"`
	UserID    int64    `gorm:"index;not null"`
	OrgID     int64    `gorm:"index;not null"`
	UserType  UserType `gorm:"size:32"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AdminSession mirrors Session for the platform-admin principal class.
// The two tables are kept separate so user claims can never be checked
// against an admin session or vice versa.
type AdminSession struct {
	ID        string `gorm:"primaryKey;size:36"`
	Token     string `gorm:"uniqueIndex;size:512;not null"`
	AdminID   int64  `gorm:"index;not null"`
	AdminType string `gorm:"size:32"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
