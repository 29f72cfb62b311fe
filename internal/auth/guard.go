package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// Guard verifies principals against the token signature, the session
// table and the live account rows. Every protected route goes through it.
type Guard struct {
	DB     *gorm.DB
	Secret string
}

// RequireAuth authenticates an organization user. The ordered checks are:
// token signature/expiry, session row by exact token string, session
// expiry, claim/row equality, live organization state, live user state.
// None of the steps is skipped: the row checks are what make a stolen or
// logged-out token revocable before its signed expiry.
func (g *Guard) RequireAuth(c *gin.Context) (*UserClaims, error) {
	tokenStr := TokenFromRequest(c, AuthCookieName)
	if tokenStr == "" {
		return nil, Unauthorized("missing bearer token")
	}
	return g.verifyUserToken(tokenStr)
}

// RequireAdminAuth authenticates a platform admin against the
// admin_sessions table. Same pipeline shape as RequireAuth, different
// claim type, table and account predicate; no org check since admins act
// across all tenants.
func (g *Guard) RequireAdminAuth(c *gin.Context) (*AdminClaims, error) {
	tokenStr := TokenFromRequest(c, AdminAuthCookieName)
	if tokenStr == "" {
		return nil, Unauthorized("missing bearer token")
	}
	return g.verifyAdminToken(tokenStr)
}

// CheckUserAuthFromCookies is the non-throwing variant for optional-auth
// pages: cookie only, returns nil claims on any failure.
func (g *Guard) CheckUserAuthFromCookies(c *gin.Context) *UserClaims {
	tokenStr, err := c.Cookie(AuthCookieName)
	if err != nil || tokenStr == "" {
		return nil
	}
	claims, err := g.verifyUserToken(tokenStr)
	if err != nil {
		return nil
	}
	return claims
}

func (g *Guard) CheckAdminAuthFromCookies(c *gin.Context) *AdminClaims {
	tokenStr, err := c.Cookie(AdminAuthCookieName)
	if err != nil || tokenStr == "" {
		return nil
	}
	claims, err := g.verifyAdminToken(tokenStr)
	if err != nil {
		return nil
	}
	return claims
}

// AuthStatus describes the caller for routing decisions on pages that
// work both logged-in and logged-out.
type AuthStatus struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	IsAdmin         bool   `json:"is_admin"`
	IsClient        bool   `json:"is_client"`
	RedirectPath    string `json:"redirect_path"`
}

// GetAuthStatusFromCookies combines both cookie checks into one
// descriptor. Admin wins when both cookies are somehow valid.
func (g *Guard) GetAuthStatusFromCookies(c *gin.Context) AuthStatus {
	if claims := g.CheckAdminAuthFromCookies(c); claims != nil {
		return AuthStatus{IsAuthenticated: true, IsAdmin: true, RedirectPath: "/admin"}
	}
	if claims := g.CheckUserAuthFromCookies(c); claims != nil {
		return AuthStatus{IsAuthenticated: true, IsClient: true, RedirectPath: "/dashboard"}
	}
	return AuthStatus{RedirectPath: "/login"}
}

func (g *Guard) verifyUserToken(tokenStr string) (*UserClaims, error) {
	claims, err := ParseUserToken(tokenStr, g.Secret)
	if err != nil {
		return nil, Unauthorized("invalid or expired token")
	}

	var sess models.Session
	if err := g.DB.Where("token = ?", tokenStr).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthorized("session not found")
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, Unauthorized("session expired")
	}
	// The stored identity must equal the token claims; a mismatch means
	// tampering or a stale reused token.
	if sess.UserID != claims.UserID || sess.OrgID != claims.OrgID {
		return nil, Unauthorized("session mismatch")
	}

	var org models.Organization
	if err := g.DB.First(&org, sess.OrgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Forbidden("organization deactivated")
		}
		return nil, fmt.Errorf("load organization: %w", err)
	}
	if !org.IsActive || org.IsDeleted {
		return nil, Forbidden("organization deactivated")
	}

	var user models.User
	if err := g.DB.First(&user, sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthorized("user not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return nil, Forbidden("account deactivated")
	}

	return claims, nil
}

func (g *Guard) verifyAdminToken(tokenStr string) (*AdminClaims, error) {
	claims, err := ParseAdminToken(tokenStr, g.Secret)
	if err != nil {
		return nil, Unauthorized("invalid or expired token")
	}

	var sess models.AdminSession
	if err := g.DB.Where("token = ?", tokenStr).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthorized("session not found")
		}
		return nil, fmt.Errorf("load admin session: %w", err)
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, Unauthorized("session expired")
	}
	if sess.AdminID != claims.AdminID || sess.AdminType != string(claims.Role) {
		return nil, Unauthorized("session mismatch")
	}

	var admin models.Admin
	if err := g.DB.First(&admin, sess.AdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthorized("admin not found")
		}
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if !admin.IsActive || admin.IsDeleted {
		return nil, Forbidden("account deactivated")
	}

	return claims, nil
}

// TokenFromRequest extracts the raw token, preferring the Authorization
// header over the named cookie when both are present.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		return strings.TrimSpace(tokenStr)
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}
