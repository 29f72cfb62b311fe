package models

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

type Project struct {
	ID        int64         `gorm:"primaryKey"`
	OrgID     int64         `gorm:"index;not null"`
	ClientID  int64         `gorm:"index"`
	Name      string        `gorm:"size:200;not null"`
	Status    ProjectStatus `gorm:"size:32;default:active"`
	StartDate *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Lots []Lot `gorm:"foreignKey:ProjectID"`
}

func (Project) OrgScoped() {}
