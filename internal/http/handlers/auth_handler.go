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
	"github.com/shubhkakadia/cabipro-sub001/internal/tenant"
)

// Login authenticates an organization user, writes the session row and
// sets the auth + org cookies. The session row, the token expiry and the
// cookie Expires all share one timestamp captured here.
func Login(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
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

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		if !auth.CheckPassword(input.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
			return
		}

		var org models.Organization
		if err := db.First(&org, user.OrgID).Error; err != nil || !org.IsActive || org.IsDeleted {
			c.JSON(http.StatusForbidden, gin.H{"error": "organization deactivated"})
			return
		}

		expiresAt := time.Now().Add(cfg.SessionTTL)
		claims := auth.UserClaims{
			UserID:   user.ID,
			OrgID:    user.OrgID,
			Email:    user.Email,
			UserType: user.UserType,
		}
		token, err := auth.SignUserToken(claims, cfg.JWTSecret, expiresAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
			return
		}

		sess, err := auth.NewSession(db, token, claims, expiresAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		now := time.Now()
		db.Model(&models.User{}).Where("id = ?", user.ID).Update("last_login_at", now)
		recordAuthEvent(db, c, user.OrgID, user.ID, 0, "auth.login", map[string]any{"email": user.Email})

		auth.SetAuthCookie(c, token, sess.ExpiresAt, cfg.IsProduction())
		auth.SetOrgCookie(c, org.Slug, sess.ExpiresAt, cfg.IsProduction())

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":        user.ID,
				"email":     user.Email,
				"name":      user.Name,
				"org_id":    user.OrgID,
				"user_type": user.UserType,
			},
			"organization": gin.H{"id": org.ID, "slug": org.Slug, "name": org.Name},
		})
	}
}

// Logout revokes the current session row and clears all three cookies.
// Works with an already-invalid token so a half-logged-out client can
// always finish logging out.
func Logout(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c, auth.AuthCookieName)
		if token != "" {
			if claims, err := auth.ParseUserToken(token, cfg.JWTSecret); err == nil {
				recordAuthEvent(db, c, claims.OrgID, claims.UserID, 0, "auth.logout", nil)
			}
			if err := auth.DeleteSessionByToken(db, token); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke session"})
				return
			}
		}
		auth.ClearAuthCookies(c)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// Me returns the authenticated user's profile and resolved organization.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var user models.User
		if err := scoped(c, db).First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		resp := gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"org_id":        user.OrgID,
			"user_type":     user.UserType,
			"last_login_at": user.LastLoginAt,
		}
		if org := tenant.OrgFrom(c); org != nil {
			resp["organization"] = gin.H{"id": org.ID, "slug": org.Slug, "name": org.Name}
		}
		c.JSON(http.StatusOK, gin.H{"user": resp})
	}
}

// AuthStatus reports the combined cookie-auth state for routing decisions
// on optional-auth pages. Never errors.
func AuthStatus(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, guard.GetAuthStatusFromCookies(c))
	}
}
