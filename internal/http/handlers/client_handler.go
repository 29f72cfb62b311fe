package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// ListClients returns the current tenant's clients. The scope plugin adds
// the org filter; no handler in this package filters by org by hand.
func ListClients(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var clients []models.Client
		if err := scoped(c, db).Order("id").Find(&clients).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clients": clients})
	}
}

func CreateClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name    string `json:"name" binding:"required"`
			Email   string `json:"email"`
			Phone   string `json:"phone"`
			Address string `json:"address"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		client := models.Client{
			Name:     strings.TrimSpace(input.Name),
			Email:    strings.TrimSpace(strings.ToLower(input.Email)),
			Phone:    input.Phone,
			Address:  input.Address,
			IsActive: true,
		}
		if err := scoped(c, db).Create(&client).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"client": client})
	}
}
