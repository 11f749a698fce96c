package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsPrivileged(t *testing.T) {
	assert.True(t, RoleAdmin.IsPrivileged())
	assert.True(t, RoleSuperAdmin.IsPrivileged())
	assert.False(t, RoleUser.IsPrivileged())
	assert.False(t, Role("").IsPrivileged())
	assert.False(t, Role("ADMIN").IsPrivileged())
}

func TestUserType_Role(t *testing.T) {
	assert.Equal(t, RoleAdmin, UserTypeAdmin.Role())
	assert.Equal(t, RoleSuperAdmin, UserTypeSuperAdmin.Role())
	assert.Equal(t, RoleUser, UserTypeVendor.Role())
	assert.Equal(t, RoleUser, UserTypeGroundOwner.Role())
}

func TestProvisionUserRequest_Validate(t *testing.T) {
	valid := ProvisionUserRequest{
		Email:    "owner@sportify.test",
		Password: "secret1",
		Name:     "Ground Owner",
		UserType: UserTypeGroundOwner,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mut  func(r *ProvisionUserRequest)
	}{
		{"bad email", func(r *ProvisionUserRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *ProvisionUserRequest) { r.Password = "12345" }},
		{"long password", func(r *ProvisionUserRequest) { r.Password = strings.Repeat("x", 73) }},
		{"missing name", func(r *ProvisionUserRequest) { r.Name = "" }},
		{"unknown type", func(r *ProvisionUserRequest) { r.UserType = "coach" }},
		{"missing type", func(r *ProvisionUserRequest) { r.UserType = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mut(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestIsAuthorizationError(t *testing.T) {
	assert.True(t, IsAuthorizationError(ErrForbidden))
	assert.True(t, IsAuthorizationError(ErrInvalidToken))
	assert.False(t, IsAuthorizationError(ErrIdentityCreation))
}
