package security

import (
	"testing"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRoleAccess(t *testing.T) {
	adminOnly := NewRoleAccess(model.RoleAdmin)

	assert.True(t, adminOnly.Allowed(model.RoleAdmin))
	assert.False(t, adminOnly.Allowed(model.RoleUser))
	assert.False(t, adminOnly.Allowed(model.Role("moderator")))

	everyone := NewRoleAccess(model.RoleUser, model.RoleAdmin)
	assert.True(t, everyone.Allowed(model.RoleUser))
	assert.True(t, everyone.Allowed(model.RoleAdmin))
}
