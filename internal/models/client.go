package models

import "time"

type Client struct {
	ID        int64  `gorm:"primaryKey"`
	OrgID     int64  `gorm:"index;not null"`
	Name      string `gorm:"size:200;not null"`
	Email     string `gorm:"size:255"`
	Phone     string `gorm:"size:64"`
	Address   string `gorm:"size:500"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Projects []Project `gorm:"foreignKey:ClientID"`
}

func (Client) OrgScoped() {}
