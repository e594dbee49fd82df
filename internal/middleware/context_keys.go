package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/prodledger/production_budget_app/internal/core/domain"
)

const identityKey = contextKey("identity")

// GetIdentityFromContext retrieves the acting user's identity set by the auth
// middleware. The boolean reports whether an identity was present.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	val, exists := c.Get(string(identityKey))
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	if !ok {
		return domain.Identity{}, false
	}
	return identity, true
}
