package tenant

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/auth"
	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// CurrentTenant resolves the active organization from the org-slug cookie.
// The slug is read from the cookie only, never from the body or path, so a
// request cannot switch tenants independently of its session. A wrong,
// inactive or soft-deleted slug is indistinguishable from no tenant: nil.
func CurrentTenant(c *gin.Context, db *gorm.DB) *models.Organization {
	slug, err := c.Cookie(auth.OrgCookieName)
	if err != nil || slug == "" {
		return nil
	}

	var org models.Organization
	if err := db.
		Where("slug = ? AND is_active = ? AND is_deleted = ?", slug, true, false).
		First(&org).Error; err != nil {
		return nil
	}
	return &org
}

// RequireOrganization is CurrentTenant for handlers that cannot proceed
// without a tenant.
func RequireOrganization(c *gin.Context, db *gorm.DB) (*models.Organization, error) {
	org := CurrentTenant(c, db)
	if org == nil {
		return nil, auth.Unauthorized("no active organization")
	}
	return org, nil
}

// Middleware resolves the tenant and enters its scope for the remainder of
// the request: handlers that query through the request context get every
// operation stamped and filtered by the scope plugin. Aborts when no
// active organization resolves or when the slug names an organization
// other than the one the verified session belongs to.
func Middleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		org, err := RequireOrganization(c, db)
		if err != nil {
			auth.Respond(c, err)
			return
		}
		// The slug cookie must name the org the session belongs to; it
		// selects the tenant but can never widen it.
		if claims := auth.ClaimsFrom(c); claims != nil && claims.OrgID != org.ID {
			auth.Respond(c, auth.Unauthorized("no active organization"))
			return
		}
		c.Request = c.Request.WithContext(WithOrganization(c.Request.Context(), org.ID))
		c.Set("org", org)
		c.Next()
	}
}

// OrgFrom returns the organization resolved by Middleware, or nil.
func OrgFrom(c *gin.Context) *models.Organization {
	if v, ok := c.Get("org"); ok {
		if org, ok := v.(*models.Organization); ok {
			return org
		}
	}
	return nil
}
