package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names shared by the guards, the tenant resolver and the handlers.
const (
	AuthCookieName      = "auth-token"
	AdminAuthCookieName = "admin-auth-token"
	OrgCookieName       = "org-slug"
)

// DefaultCookieTTL is the fallback lifetime used when a caller does not
// supply an expiry, matching the default session TTL of 7 days.
const DefaultCookieTTL = 7 * 24 * time.Hour

// SetAuthCookie writes the user token cookie with an explicit Expires
// equal to the session row's expiry, so the cookie can never outlive or
// undershoot the server-side session.
func SetAuthCookie(c *gin.Context, token string, expires time.Time, secure bool) {
	setCookie(c, AuthCookieName, token, expires, true, secure)
}

func SetAdminAuthCookie(c *gin.Context, token string, expires time.Time, secure bool) {
	setCookie(c, AdminAuthCookieName, token, expires, true, secure)
}

// SetOrgCookie records the active tenant slug. Not HttpOnly: the frontend
// reads it to render the current organization.
func SetOrgCookie(c *gin.Context, slug string, expires time.Time, secure bool) {
	setCookie(c, OrgCookieName, slug, expires, false, secure)
}

// DeleteCookie expires a cookie immediately with an empty value.
func DeleteCookie(c *gin.Context, name string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookies removes both auth cookies and the tenant slug at once.
// Used by logout.
func ClearAuthCookies(c *gin.Context) {
	DeleteCookie(c, AuthCookieName)
	DeleteCookie(c, AdminAuthCookieName)
	DeleteCookie(c, OrgCookieName)
}

// setCookie uses http.SetCookie directly because gin's helper only exposes
// MaxAge and the session contract requires an explicit Expires timestamp.
func setCookie(c *gin.Context, name, value string, expires time.Time, httpOnly, secure bool) {
	if expires.IsZero() {
		expires = time.Now().Add(DefaultCookieTTL)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: httpOnly,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
