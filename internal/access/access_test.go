package access

import (
	"testing"

	"streamcart/auth-api/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Permission
		ok   bool
	}{
		{"createCategory", Permission{Create, Category}, true},
		{"deleteOrder", Permission{Delete, Order}, true},
		{"readRoom", Permission{Read, Room}, true},
		{"create", Permission{}, false},
		{"adminEverything", Permission{}, false},
		{"", Permission{}, false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
			assert.Equal(t, tt.in, got.String())
		}
	}
}

func TestOrdinaryUserBypassesChecks(t *testing.T) {
	c := NewChecker(&model.User{Role: model.RoleUser})

	assert.True(t, c.Allowed(Create, Category))
	assert.True(t, c.Allowed(Delete, Order))
}

func TestElevatedRoleNeedsExactGrant(t *testing.T) {
	for _, role := range []string{model.RoleModerator, model.RoleAdmin} {
		c := NewChecker(&model.User{
			Role:        role,
			Permissions: model.StringSlice{"createCategory", "updateCategory"},
		})

		assert.True(t, c.Allowed(Create, Category), role)
		assert.True(t, c.Allowed(Update, Category), role)
		assert.False(t, c.Allowed(Delete, Category), role)
		assert.False(t, c.Allowed(Create, Order), role)
	}
}

func TestElevatedRoleWithNoGrants(t *testing.T) {
	c := NewChecker(&model.User{Role: model.RoleAdmin})

	assert.False(t, c.Allowed(Read, Category))
}

func TestMalformedGrantsDropped(t *testing.T) {
	c := NewChecker(&model.User{
		Role:        model.RoleAdmin,
		Permissions: model.StringSlice{"bogus", "createcategory"},
	})

	assert.False(t, c.Allowed(Create, Category))
}
