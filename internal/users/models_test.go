package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Vendor ")
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, role)

	_, err = ParseRole("USER")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRole_IsSelfAssignable(t *testing.T) {
	assert.True(t, RoleCustomer.IsSelfAssignable())
	assert.True(t, RoleVendor.IsSelfAssignable())
	assert.True(t, RoleManager.IsSelfAssignable())
	assert.False(t, RoleAdmin.IsSelfAssignable())
}
