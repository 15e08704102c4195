package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justsurfingit/jobly-api/internal/apperr"
)

var (
	anon  *Identity
	user  = &Identity{Username: "u1"}
	admin = &Identity{Username: "a1", IsAdmin: true}
)

func TestRequireLoggedIn(t *testing.T) {
	assert.NoError(t, RequireLoggedIn(user))
	assert.NoError(t, RequireLoggedIn(admin))
	assert.True(t, apperr.IsUnauthorized(RequireLoggedIn(anon)))
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(admin))
	assert.True(t, apperr.IsUnauthorized(RequireAdmin(user)))
	assert.True(t, apperr.IsUnauthorized(RequireAdmin(anon)))
}

func TestRequireSelfOrAdmin(t *testing.T) {
	assert.NoError(t, RequireSelfOrAdmin(user, "u1"))
	assert.NoError(t, RequireSelfOrAdmin(admin, "u1"))
	assert.True(t, apperr.IsUnauthorized(RequireSelfOrAdmin(user, "u2")))
	assert.True(t, apperr.IsUnauthorized(RequireSelfOrAdmin(anon, "u1")))
}
