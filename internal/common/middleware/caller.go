package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// CallerHeader carries the wallet identity of the on-chain caller.
	CallerHeader = "X-Wallet-Address"
	// CallerKey is the gin context key the wallet is stored under.
	CallerKey = "caller_wallet"
)

// CallerIdentity extracts the caller wallet from the request headers. The
// engine performs all capability checks itself; this middleware only
// guarantees an identity is present on mutating routes.
func CallerIdentity(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.GetHeader(CallerHeader)
		if wallet == "" && required {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + CallerHeader + " header"})
			c.Abort()
			return
		}

		c.Set(CallerKey, wallet)
		c.Next()
	}
}

// Caller returns the wallet identity set by CallerIdentity.
func Caller(c *gin.Context) string {
	return c.GetString(CallerKey)
}
