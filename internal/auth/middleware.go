package auth

import "github.com/gin-gonic/gin"

const (
	claimsKey      = "claims"
	adminClaimsKey = "admin_claims"
)

// Middleware runs the full user verification pipeline and aborts with the
// translated error on failure. Verified claims end up in the gin context.
func Middleware(g *Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := g.RequireAuth(c)
		if err != nil {
			Respond(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminMiddleware is the platform-admin counterpart of Middleware.
func AdminMiddleware(g *Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := g.RequireAdminAuth(c)
		if err != nil {
			Respond(c, err)
			return
		}
		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified user claims set by Middleware, or nil
// when the route ran without it.
func ClaimsFrom(c *gin.Context) *UserClaims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*UserClaims); ok {
			return claims
		}
	}
	return nil
}

func AdminClaimsFrom(c *gin.Context) *AdminClaims {
	if v, ok := c.Get(adminClaimsKey); ok {
		if claims, ok := v.(*AdminClaims); ok {
			return claims
		}
	}
	return nil
}
