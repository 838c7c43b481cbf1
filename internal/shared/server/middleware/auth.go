package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"legalens-backend/internal/shared/auth"
	"legalens-backend/internal/shared/server/respond"
)

const (
	userIDKey      = "userId"
	userEmailKey   = "userEmail"
	userNameKey    = "userName"
	userPictureKey = "userPicture"
)

// Auth validates session tokens and stores identity in context. Sign-up,
// sign-in, the OAuth flow, health/metrics and published-blog reads stay
// public; everything else requires a valid Bearer token. A token presented
// on a public path is still parsed so per-user reads (like state, own
// draft listings) see the caller, but an anonymous or invalid token never
// blocks a public read.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		public := isPublicPath(c.Request.Method, c.Request.URL.Path)

		token := bearerToken(c)
		if token == "" {
			if public {
				c.Next()
				return
			}
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifySession(token)
		if err != nil {
			if public {
				c.Next()
				return
			}
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.Subject)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		if claims.Name != "" {
			c.Set(userNameKey, claims.Name)
		}
		if claims.Picture != "" {
			c.Set(userPictureKey, claims.Picture)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}

func isPublicPath(method, path string) bool {
	if strings.HasPrefix(path, "/api/v1/auth/") {
		return true
	}
	switch path {
	case "/api/v1/health", "/api/v1/metrics":
		return true
	}
	// Published blog content is world-readable.
	if method == http.MethodGet && (path == "/api/v1/blog" || strings.HasPrefix(path, "/api/v1/blog/")) {
		return true
	}
	if method == http.MethodGet && strings.HasPrefix(path, "/api/v1/profile/") {
		return true
	}
	return false
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UserNameFromContext fetches the user name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// UserPictureFromContext fetches the user picture set by the auth middleware.
func UserPictureFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userPictureKey)
	if picture, ok := val.(string); ok {
		return picture
	}
	return ""
}
