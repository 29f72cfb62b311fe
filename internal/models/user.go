package models

import "time"

type UserType string

const (
	UserTypeOwner  UserType = "owner"
	UserTypeStaff  UserType = "staff"
	UserTypeClient UserType = "client"
)

type User struct {
	ID           int64    `gorm:"primaryKey"`
	OrgID        int64    `gorm:"index;not null"`
	Email        string   `gorm:"uniqueIndex;size:255;not null"`
	Name         string   `gorm:"size:200"`
	PasswordHash string   `gorm:"size:255" json:"-"`
	UserType     UserType `gorm:"size:32;default:staff"`
	IsActive     bool     `gorm:"default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) OrgScoped() {}
