package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legalens-backend/internal/accounts"
	googleauth "legalens-backend/internal/auth"
	"legalens-backend/internal/blog"
	"legalens-backend/internal/chat"
	"legalens-backend/internal/compare"
	"legalens-backend/internal/documents"
	"legalens-backend/internal/profiles"
	"legalens-backend/internal/shared/config"
	"legalens-backend/internal/shared/metrics"
	"legalens-backend/internal/shared/server/middleware"
	"legalens-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	AccountsHandler *accounts.Handler
	DocumentHandler *documents.Handler
	ChatHandler     *chat.Handler
	CompareHandler  *compare.Handler
	BlogHandler     *blog.Handler
	ProfileHandler  *profiles.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.LLMRateLimitGroup: {Rate: 0.5, Burst: 5},
			},
			GroupFor: middleware.LLMGroupFor,
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	deps.AccountsHandler.RegisterRoutes(api)
	deps.DocumentHandler.RegisterRoutes(api)
	deps.ChatHandler.RegisterRoutes(api)
	deps.CompareHandler.RegisterRoutes(api)
	deps.BlogHandler.RegisterRoutes(api)
	deps.ProfileHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
