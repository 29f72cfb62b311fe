package models

import (
	"time"

	"gorm.io/datatypes"
)

type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "draft"
	POStatusOrdered   PurchaseOrderStatus = "ordered"
	POStatusReceived  PurchaseOrderStatus = "received"
	POStatusCancelled PurchaseOrderStatus = "cancelled"
)

type PurchaseOrder struct {
	ID         int64               `gorm:"primaryKey"`
	OrgID      int64               `gorm:"index;not null"`
	SupplierID int64               `gorm:"index;not null"`
	ProjectID  int64               `gorm:"index"`
	Number     string              `gorm:"size:64;not null"`
	Status     PurchaseOrderStatus `gorm:"size:32;default:draft"`
	LineItems  datatypes.JSON      `gorm:"type:json"` // [{description, qty, unit_price}]
	TotalCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (PurchaseOrder) OrgScoped() {}
