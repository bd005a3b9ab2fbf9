package api

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"newscast/apperrors"
)

// AuthRequired accepts "Authorization: Bearer <token>" or "X-API-Key: <token>" and
// aborts with 401 unless the token is one of tokens. An empty token list rejects everything.
func AuthRequired(tokens []string) gin.HandlerFunc {
	allowed := make([][]byte, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			allowed = append(allowed, []byte(t))
		}
	}

	return func(c *gin.Context) {
		presented := requestToken(c)
		if presented == "" || !tokenAllowed(allowed, []byte(presented)) {
			respondError(c, "unauthorized", apperrors.NewUnauthorizedError("missing or invalid API token"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func requestToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		const prefix = "Bearer "
		if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
			return strings.TrimSpace(h[len(prefix):])
		}
		return ""
	}
	return strings.TrimSpace(c.GetHeader("X-API-Key"))
}

// tokenAllowed compares against every token so timing does not depend on which one matched.
func tokenAllowed(allowed [][]byte, presented []byte) bool {
	ok := 0
	for _, t := range allowed {
		ok |= subtle.ConstantTimeCompare(t, presented)
	}
	return ok == 1
}
