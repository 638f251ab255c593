package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/eventfeed/eventfeed-api/internal/application"
	"github.com/eventfeed/eventfeed-api/pkg/helpers"
	"github.com/eventfeed/eventfeed-api/pkg/response"
)

const CtxUserIDKey = "userID"

type cachedUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

func userCacheKey(uid string) string { return "user:auth:" + uid }

// Auth is the gate in front of every protected route. It takes the bearer
// token from the Authorization header, verifies it, and resolves the user
// through a Redis read-through cache with the credential store as fallback.
// Any failure rejects the request with the same 401 before handlers run.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager, users *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		var cu cachedUser
		hit := false
		if rdb != nil {
			hit, _ = helpers.RedisGetJSON(ctx, rdb, userCacheKey(claims.UserID), &cu)
		}
		if !hit {
			u, err := users.GetByID(ctx, claims.UserID)
			if err != nil {
				response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
				c.Abort()
				return
			}
			cu = cachedUser{ID: u.ID, Username: u.Username, Email: u.Email, ProfileImage: u.ProfileImage}
			if rdb != nil {
				_ = helpers.RedisSetJSON(ctx, rdb, userCacheKey(u.ID), cu, 24*time.Hour)
			}
		}

		c.Set(CtxUserIDKey, cu.ID)
		c.Set("userName", cu.Username)
		c.Set("userEmail", cu.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if h == "" {
		return ""
	}
	if t, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(t)
	}
	return h
}
