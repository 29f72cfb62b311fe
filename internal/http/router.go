package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/auth"
	"github.com/shubhkakadia/cabipro-sub001/internal/config"
	"github.com/shubhkakadia/cabipro-sub001/internal/http/handlers"
	"github.com/shubhkakadia/cabipro-sub001/internal/tenant"
)

func NewRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.Default()
	guard := &auth.Guard{DB: db, Secret: cfg.JWTSecret}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", handlers.Login(db, cfg))
	v1.POST("/auth/logout", handlers.Logout(db, cfg))
	v1.GET("/auth/status", handlers.AuthStatus(guard))

	// Protected org API: the auth guard verifies the principal, then the
	// tenant middleware resolves the org-slug cookie and enters the
	// tenant scope for every query issued below.
	api := v1.Group("", auth.Middleware(guard), tenant.Middleware(db))
	{
		api.GET("/me", handlers.Me(db))

		api.GET("/clients", handlers.ListClients(db))
		api.POST("/clients", handlers.CreateClient(db))

		api.GET("/projects", handlers.ListProjects(db))
		api.POST("/projects", handlers.CreateProject(db))

		api.GET("/lots", handlers.ListLots(db))
		api.POST("/lots", handlers.CreateLot(db))

		api.GET("/suppliers", handlers.ListSuppliers(db))
		api.POST("/suppliers", handlers.CreateSupplier(db))

		api.GET("/purchase-orders", handlers.ListPurchaseOrders(db))
		api.POST("/purchase-orders", handlers.CreatePurchaseOrder(db))
		api.PATCH("/purchase-orders/:id/status", handlers.UpdatePurchaseOrderStatus(db))

		api.GET("/audit", handlers.ListAudit(db))
	}

	// Platform admin routes run without a tenant context: their queries
	// are global by construction.
	admin := v1.Group("/admin")
	admin.POST("/auth/login", handlers.AdminLogin(db, cfg))
	admin.POST("/auth/logout", handlers.AdminLogout(db, cfg))

	adminAPI := admin.Group("", auth.AdminMiddleware(guard))
	{
		adminAPI.GET("/me", handlers.AdminMe(db))
		adminAPI.GET("/organizations", handlers.ListOrganizations(db))
		adminAPI.POST("/organizations/:id/deactivate", handlers.DeactivateOrganization(db))
		adminAPI.POST("/users/:id/revoke-sessions", handlers.RevokeUserSessions(db))
	}

	return r
}
