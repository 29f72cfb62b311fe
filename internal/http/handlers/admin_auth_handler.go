package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/auth"
	"github.com/shubhkakadia/cabipro-sub001/internal/config"
	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// AdminLogin authenticates a platform admin. Mirrors Login with the admin
// claim shape, the admin_sessions table and the admin TTL; no organization
// is involved.
func AdminLogin(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.Email = strings.TrimSpace(strings.ToLower(input.Email))

		var admin models.Admin
		if err := db.Where("email = ?", input.Email).First(&admin).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		if !auth.CheckPassword(input.Password, admin.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		if !admin.IsActive || admin.IsDeleted {
			c.JSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
			return
		}

		expiresAt := time.Now().Add(cfg.AdminSessionTTL)
		claims := auth.AdminClaims{AdminID: admin.ID, Email: admin.Email, Role: admin.Role}
		token, err := auth.SignAdminToken(claims, cfg.JWTSecret, expiresAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
			return
		}

		sess, err := auth.NewAdminSession(db, token, claims, expiresAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		recordAuthEvent(db, c, 0, 0, admin.ID, "admin.login", map[string]any{"email": admin.Email})
		auth.SetAdminAuthCookie(c, token, sess.ExpiresAt, cfg.IsProduction())

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"admin": gin.H{
				"id":    admin.ID,
				"email": admin.Email,
				"name":  admin.Name,
				"role":  admin.Role,
			},
		})
	}
}

func AdminLogout(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c, auth.AdminAuthCookieName)
		if token != "" {
			if claims, err := auth.ParseAdminToken(token, cfg.JWTSecret); err == nil {
				recordAuthEvent(db, c, 0, 0, claims.AdminID, "admin.logout", nil)
			}
			if err := auth.DeleteAdminSessionByToken(db, token); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke session"})
				return
			}
		}
		auth.ClearAuthCookies(c)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

func AdminMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.AdminClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var admin models.Admin
		if err := db.First(&admin, claims.AdminID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		}})
	}
}
