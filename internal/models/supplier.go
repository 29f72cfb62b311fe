package models

import "time"

type Supplier struct {
	ID        int64  `gorm:"primaryKey"`
	OrgID     int64  `gorm:"index;not null"`
	Name      string `gorm:"size:200;not null"`
	Email     string `gorm:"size:255"`
	Phone     string `gorm:"size:64"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Supplier) OrgScoped() {}
