package storefront_test

import (
	"testing"

	"github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
)

func TestInitialSessionState(t *testing.T) {
	state := storefront.InitialSessionState()

	assert.Nil(t, state.User)
	assert.False(t, state.IsAuthenticated)
	assert.False(t, state.Loading)
	assert.False(t, state.HasError())
	assert.False(t, state.HasValidationErrors())
	assert.NotNil(t, state.ValidationErrors)
}

func TestSessionState_Clone(t *testing.T) {
	state := storefront.InitialSessionState()
	state.User = testUser(storefront.RoleUser)
	state.ValidationErrors["email"] = "bad"

	c := state.Clone()
	c.User.Name = "changed"
	c.ValidationErrors["email"] = "changed"

	assert.Equal(t, "Ada", state.User.Name)
	assert.Equal(t, "bad", state.ValidationErrors["email"])
	assert.True(t, state.HasValidationErrors())
}
