package auth

import (
	"strings"

	httpPlatform "github.com/yamada-labo/prospectline/internal/platform/http"
	"github.com/gin-gonic/gin"
)

// JobTokenMiddleware validates that the bearer token in the Authorization
// header was minted for the job id in the request path.
func JobTokenMiddleware(manager *JobTokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.Validate(parts[1])
		if err != nil {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		jobID := c.Param("id")
		if jobID != "" && claims.JobID != jobID {
			httpPlatform.RespondWithError(c, 403, "FORBIDDEN", "Token does not grant access to this job")
			c.Abort()
			return
		}

		c.Set("job_id", claims.JobID)
		c.Next()
	}
}
