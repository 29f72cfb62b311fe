package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuthAudit records authentication events (logins, logouts, forced
// revocations). AdminID is set instead of UserID for platform actions;
// those rows carry OrgID 0 and are only visible in global mode.
type AuthAudit struct {
	ID        int64          `gorm:"primaryKey"`
	OrgID     int64          `gorm:"index"`
	UserID    int64          `gorm:"index"`
	AdminID   int64          `gorm:"index"`
	Action    string         `gorm:"size:100;not null"` // e.g. "auth.login", "auth.logout"
	Metadata  datatypes.JSON `gorm:"type:json"`
	IP        string         `gorm:"size:64"`
	UserAgent string         `gorm:"size:255"`
	CreatedAt time.Time
}

func (AuthAudit) OrgScoped() {}
