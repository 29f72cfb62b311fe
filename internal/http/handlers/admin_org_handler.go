package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/auth"
	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// ListOrganizations returns all tenants. Admin routes carry no tenant
// context, so queries here run in global mode.
func ListOrganizations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orgs []models.Organization
		if err := db.Order("id").Find(&orgs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"organizations": orgs})
	}
}

// DeactivateOrganization suspends a tenant and drops its live sessions.
// Even without the session sweep every guarded request for this org would
// start failing with 403 on its live-organization check.
func DeactivateOrganization(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || orgID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
			return
		}

		res := db.Model(&models.Organization{}).Where("id = ?", orgID).Update("is_active", false)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}

		if err := db.Where("org_id = ?", orgID).Delete(&models.Session{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		claims := auth.AdminClaimsFrom(c)
		var adminID int64
		if claims != nil {
			adminID = claims.AdminID
		}
		recordAuthEvent(db, c, orgID, 0, adminID, "admin.org.deactivate", nil)

		c.JSON(http.StatusOK, gin.H{"message": "organization deactivated"})
	}
}

// RevokeUserSessions force-logs-out every session of one user.
func RevokeUserSessions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || userID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		revoked, err := auth.DeleteSessionsForUser(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		claims := auth.AdminClaimsFrom(c)
		var adminID int64
		if claims != nil {
			adminID = claims.AdminID
		}
		recordAuthEvent(db, c, 0, userID, adminID, "admin.user.revoke-sessions",
			map[string]any{"revoked": revoked})

		c.JSON(http.StatusOK, gin.H{"revoked": revoked})
	}
}
