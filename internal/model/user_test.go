package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleSuperAdmin, RoleAdmin, RoleOperator, RoleUser, RoleReadOnly} {
		assert.True(t, IsValidRole(role), role)
	}
	for _, role := range []string{"", "root", "ADMIN", "lectura"} {
		assert.False(t, IsValidRole(role), role)
	}
}

func TestIsValidAccessLevel(t *testing.T) {
	for _, level := range []string{AccessLimited, AccessFull, AccessNone} {
		assert.True(t, IsValidAccessLevel(level), level)
	}
	for _, level := range []string{"", "total", "FULL"} {
		assert.False(t, IsValidAccessLevel(level), level)
	}
}

func TestUserResponseOmitsCredential(t *testing.T) {
	user := User{
		ID:          primitive.NewObjectID(),
		Name:        "Ana",
		Email:       "ana@example.com",
		Password:    "$2a$12$should-never-leak",
		Role:        RoleReadOnly,
		AccessLevel: AccessNone,
		Active:      true,
		Deleted:     false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	raw, err := json.Marshal(user.ToResponse())
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "should-never-leak")
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "deleted")
	assert.Contains(t, string(raw), user.ID.Hex())
}

func TestUserJSONHidesSensitiveFields(t *testing.T) {
	// Even marshaling the raw document must not expose the hash.
	user := User{Password: "$2a$12$should-never-leak", Deleted: true}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "should-never-leak")
	assert.NotContains(t, string(raw), "deleted")
}
