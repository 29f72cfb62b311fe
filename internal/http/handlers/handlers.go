package handlers

import (
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// scoped threads the request context into gorm so the tenant scope plugin
// sees the resolved organization. Every tenant-facing handler queries
// through it.
func scoped(c *gin.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(c.Request.Context())
}

// recordAuthEvent appends an audit row for an authentication event.
// Failures are logged, never surfaced: auditing must not break auth.
func recordAuthEvent(db *gorm.DB, c *gin.Context, orgID, userID, adminID int64, action string, meta map[string]any) {
	var payload datatypes.JSON
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			slog.Warn("audit metadata marshal failed", "action", action, "error", err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	entry := models.AuthAudit{
		OrgID:     orgID,
		UserID:    userID,
		AdminID:   adminID,
		Action:    action,
		Metadata:  payload,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := db.Create(&entry).Error; err != nil {
		slog.Warn("audit write failed", "action", action, "error", err)
	}
}
