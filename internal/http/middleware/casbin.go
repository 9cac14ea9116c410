package middleware

import (
	"net/http"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CasbinMW wraps the casbin enforcer and ownership rules for middleware
type CasbinMW struct {
	enforcer domain.CasbinEnforcer
	rules    []config.OwnershipRule
	logger   *zap.Logger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer domain.CasbinEnforcer, rules []config.OwnershipRule, logger *zap.Logger) *CasbinMW {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CasbinMW{enforcer: enforcer, rules: rules, logger: logger}
}

// Enforce returns the casbin authorization middleware. It must run after
// BasicAuth.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		// 1. Get account info from context
		accountID := c.GetString(AccountIDKey)
		role := c.GetString(AccountRoleKey)
		if accountID == "" || role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		// 2. Check if the account is the owner based on the configured rules
		isOwner := false
		for _, rule := range mw.rules {
			// c.FullPath() is the route pattern (e.g. /api/accounts/:id)
			if rule.Path == c.FullPath() && rule.Method == method {
				requestID := extractAccountID(c, rule.Source, rule.ParamName)
				if requestID != "" && requestID == accountID {
					isOwner = true
					break
				}
			}
		}

		// 3. Check the account's own role first so admins bypass ownership
		allowed, err := mw.enforcer.Enforce("role_"+role, path, method)
		if err != nil {
			mw.logger.Error("casbin enforce failed", zap.String("path", path), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}

		// If not allowed, and the account is the owner, check with 'role_owner'
		if !allowed && isOwner {
			allowed, err = mw.enforcer.Enforce("role_owner", path, method)
			if err != nil {
				mw.logger.Error("casbin owner enforce failed", zap.String("path", path), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed for owner"})
				c.Abort()
				return
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
