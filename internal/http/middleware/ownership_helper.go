package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// extractAccountID extracts an account ID from the request based on a defined rule.
func extractAccountID(c *gin.Context, source string, paramName string) string {
	var raw string
	switch source {
	case "path":
		raw = c.Param(paramName)
	case "query":
		raw = c.Query(paramName)
	case "header":
		raw = c.GetHeader(paramName)
	}
	// Account ids are UUIDs; compare them case-insensitively
	return strings.ToLower(strings.TrimSpace(raw))
}
