package models

import "time"

type AdminRole string

const (
	AdminRoleSuper   AdminRole = "superadmin"
	AdminRoleSupport AdminRole = "support"
)

// Admin is a platform-level principal. Admins are not scoped to any
// organization and can act across all tenants.
type Admin struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	Name         string    `gorm:"size:200"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         AdminRole `gorm:"size:32;default:support"`
	IsActive     bool      `gorm:"default:true"`
	IsDeleted    bool      `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
