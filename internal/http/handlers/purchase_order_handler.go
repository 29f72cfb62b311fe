package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

func ListPurchaseOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := scoped(c, db).Order("id")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if supplierID := c.Query("supplier_id"); supplierID != "" {
			query = query.Where("supplier_id = ?", supplierID)
		}

		var orders []models.PurchaseOrder
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"purchase_orders": orders})
	}
}

type poLineItem struct {
	Description string `json:"description" binding:"required"`
	Qty         int64  `json:"qty" binding:"required"`
	UnitCents   int64  `json:"unit_cents" binding:"required"`
}

func CreatePurchaseOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			SupplierID int64        `json:"supplier_id" binding:"required"`
			ProjectID  int64        `json:"project_id"`
			Number     string       `json:"number" binding:"required"`
			LineItems  []poLineItem `json:"line_items" binding:"required,dive"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var supplier models.Supplier
		if err := scoped(c, db).First(&supplier, input.SupplierID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
			return
		}

		var total int64
		for _, item := range input.LineItems {
			total += item.Qty * item.UnitCents
		}
		items, err := json.Marshal(input.LineItems)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode line items"})
			return
		}

		order := models.PurchaseOrder{
			SupplierID: supplier.ID,
			ProjectID:  input.ProjectID,
			Number:     strings.TrimSpace(input.Number),
			Status:     models.POStatusDraft,
			LineItems:  datatypes.JSON(items),
			TotalCents: total,
		}
		if err := scoped(c, db).Create(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"purchase_order": order})
	}
}

// UpdatePurchaseOrderStatus moves a purchase order through its lifecycle.
// The scope plugin keeps both the filter and the assignments inside the
// current tenant.
func UpdatePurchaseOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase order id"})
			return
		}

		var input struct {
			Status models.PurchaseOrderStatus `json:"status" binding:"required,oneof=draft ordered received cancelled"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := scoped(c, db).Model(&models.PurchaseOrder{}).
			Where("id = ?", id).
			Update("status", input.Status)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "status updated"})
	}
}
