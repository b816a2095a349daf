package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soapboxd/soapbox/config"
	"github.com/soapboxd/soapbox/utils"
)

// AdminKeyHeader carries the operator key for moderation endpoints.
const AdminKeyHeader = "X-Admin-Key"

// AdminRequired gates moderation endpoints behind the bcrypt-hashed
// operator key. When no hash is configured the surface is disabled.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		hash := config.Get().AdminKeyHash
		if hash == "" {
			utils.Error(ctx, http.StatusForbidden, 40310, "admin surface disabled")
			ctx.Abort()
			return
		}

		key := strings.TrimSpace(ctx.GetHeader(AdminKeyHeader))
		if key == "" || !utils.CheckAdminKey(hash, key) {
			utils.Error(ctx, http.StatusForbidden, 40311, "invalid admin key")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
