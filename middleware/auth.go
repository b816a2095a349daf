package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soapboxd/soapbox/utils"
)

// ContextIdentityKey is the key used to store the authenticated anonymous
// identity id in the gin context.
const ContextIdentityKey = "identity_id"

// IdentityRequired ensures the request carries a valid identity token.
// There is no revocation path: identities have no logout.
func IdentityRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextIdentityKey, claims.IdentityID)
		ctx.Next()
	}
}

// IdentityID extracts the anonymous identity id placed by IdentityRequired.
func IdentityID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(ContextIdentityKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
