package middleware

import (
	"errors"
	"net/http"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/gin-gonic/gin"
)

// Context keys set by BasicAuth
const (
	AccountKey     = "account"
	AccountIDKey   = "account_id"
	AccountRoleKey = "account_role"
)

// Realm is announced in WWW-Authenticate challenges
const Realm = "smartrent"

// BasicAuth verifies HTTP basic credentials against the account store on
// every request. No token or session is issued.
func BasicAuth(accounts domain.AccountManager) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok || email == "" {
			c.Header("WWW-Authenticate", `Basic realm="`+Realm+`"`)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided"})
			c.Abort()
			return
		}

		account, err := accounts.Authenticate(c.Request.Context(), email, password)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidCredentials):
				c.Header("WWW-Authenticate", `Basic realm="`+Realm+`"`)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			case errors.Is(err, domain.ErrAccountInactive):
				c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
			}
			c.Abort()
			return
		}

		// Set account information in context
		c.Set(AccountKey, account)
		c.Set(AccountIDKey, account.ID.String())
		c.Set(AccountRoleKey, string(account.Role))

		c.Next()
	})
}

// RequireStaff rejects authenticated accounts without staff status
func RequireStaff() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !account.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			c.Abort()
			return
		}
		c.Next()
	})
}

// CurrentAccount returns the account authenticated by BasicAuth
func CurrentAccount(c *gin.Context) (*domain.Account, bool) {
	v, exists := c.Get(AccountKey)
	if !exists {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok && account != nil
}
