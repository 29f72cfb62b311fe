package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

func ListProjects(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := scoped(c, db).Order("id")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var projects []models.Project
		if err := query.Find(&projects).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects})
	}
}

func CreateProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ClientID int64  `json:"client_id"`
			Name     string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// A project may only reference a client in the same tenant; the
		// scoped lookup makes a foreign client invisible.
		if input.ClientID != 0 {
			var client models.Client
			if err := scoped(c, db).First(&client, input.ClientID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
				return
			}
		}

		project := models.Project{
			ClientID: input.ClientID,
			Name:     strings.TrimSpace(input.Name),
			Status:   models.ProjectActive,
		}
		if err := scoped(c, db).Create(&project).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"project": project})
	}
}

func ListLots(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := scoped(c, db).Order("id")
		if projectID := c.Query("project_id"); projectID != "" {
			query = query.Where("project_id = ?", projectID)
		}

		var lots []models.Lot
		if err := query.Find(&lots).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"lots": lots})
	}
}

func CreateLot(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProjectID int64  `json:"project_id" binding:"required"`
			Number    string `json:"number" binding:"required"`
			Address   string `json:"address"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var project models.Project
		if err := scoped(c, db).First(&project, input.ProjectID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}

		lot := models.Lot{
			ProjectID: project.ID,
			Number:    strings.TrimSpace(input.Number),
			Address:   input.Address,
			Status:    "open",
		}
		if err := scoped(c, db).Create(&lot).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"lot": lot})
	}
}
