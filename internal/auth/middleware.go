package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Authenticate attaches the identity of a valid bearer token to the request.
// It never rejects: a missing or invalid token just leaves no identity.
func Authenticate(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			if id, err := tm.Verify(token); err == nil {
				c.Set(identityKey, id)
			}
		}
		c.Next()
	}
}

// IdentityFrom returns the identity set by Authenticate, or nil.
func IdentityFrom(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}

func LoggedIn() gin.HandlerFunc {
	return guard(func(c *gin.Context) error {
		return RequireLoggedIn(IdentityFrom(c))
	})
}

func Admin() gin.HandlerFunc {
	return guard(func(c *gin.Context) error {
		return RequireAdmin(IdentityFrom(c))
	})
}

// SelfOrAdmin admits admins and the user named by the given path parameter.
func SelfOrAdmin(param string) gin.HandlerFunc {
	return guard(func(c *gin.Context) error {
		return RequireSelfOrAdmin(IdentityFrom(c), c.Param(param))
	})
}

func guard(check func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := check(c); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	for _, prefix := range []string{"Bearer ", "bearer "} {
		if strings.HasPrefix(header, prefix) {
			return strings.TrimSpace(header[len(prefix):])
		}
	}
	return strings.TrimSpace(header)
}
