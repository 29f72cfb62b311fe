package models

import "time"

type Lot struct {
	ID        int64  `gorm:"primaryKey"`
	OrgID     int64  `gorm:"index;not null"`
	ProjectID int64  `gorm:"index;not null"`
	Number    string `gorm:"size:64;not null"`
	Address   string `gorm:"size:500"`
	Status    string `gorm:"size:32;default:open"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Lot) OrgScoped() {}
