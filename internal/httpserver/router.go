package httpserver

import (
	"log"
	"net/http"
	"time"

	"jewelryshop/internal/service/adminauth"
	catalogsvc "jewelryshop/internal/service/catalog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Catalog     *catalogsvc.Store
	Auth        *adminauth.Service
	SessionTTL  time.Duration
	CORSOrigins []string
}

// buildRouter wires the storefront API, the checkout flow and the admin API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = deps.CORSOrigins
		corsCfg.AllowCredentials = true
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	ttl := deps.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	sessions := newShopperSessions(deps.Catalog, ttl)

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.Catalog))

		api.GET("/cart", getCartHandler(sessions))
		api.POST("/cart/items", addCartItemHandler(deps.Catalog, sessions))
		api.PATCH("/cart/items", changeCartItemHandler(sessions))

		api.GET("/checkout", checkoutStateHandler(sessions))
		api.POST("/checkout/summary", proceedToSummaryHandler(sessions))
		api.POST("/checkout/payment", proceedToPaymentHandler(sessions))
		api.POST("/checkout/confirm", confirmPaymentHandler(sessions))
		api.POST("/checkout/back", checkoutBackHandler(sessions))
	}

	admin := router.Group("/admin")
	{
		admin.POST("/login", adminLoginHandler(deps.Auth))
		admin.POST("/logout", adminLogoutHandler(deps.Auth))

		authed := admin.Group("", adminAuthMiddleware(deps.Auth))
		authed.GET("/products", listProductsHandler(deps.Catalog))
		authed.POST("/products", createProductHandler(deps.Catalog))
		authed.PUT("/products/:id", updateProductHandler(deps.Catalog))
		authed.DELETE("/products/:id", deleteProductHandler(deps.Catalog))
		authed.POST("/products/:id/move-up", moveProductHandler(deps.Catalog, moveUp))
		authed.POST("/products/:id/move-down", moveProductHandler(deps.Catalog, moveDown))
	}

	return router, nil
}

const adminSessionCookie = "admin_session"

// adminAuthMiddleware accepts the admin session either as a cookie or as a
// bearer token.
func adminAuthMiddleware(auth *adminauth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := adminToken(c)
		if token == "" || !auth.Validate(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "admin session required"})
			return
		}
		c.Next()
	}
}

func adminToken(c *gin.Context) string {
	if cookie, err := c.Cookie(adminSessionCookie); err == nil && cookie != "" {
		return cookie
	}
	const prefix = "Bearer "
	header := c.GetHeader("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
