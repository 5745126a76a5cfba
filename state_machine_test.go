package storefront_test

import (
	"testing"

	"github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
)

func TestReduce_PendingClearsErrors(t *testing.T) {
	for _, action := range []storefront.ActionType{
		storefront.ActionSignup,
		storefront.ActionLogin,
		storefront.ActionLogout,
		storefront.ActionUpdateProfile,
	} {
		t.Run(string(action), func(t *testing.T) {
			state := storefront.InitialSessionState()
			state.Error = "previous"
			state.ValidationErrors = map[string]string{"email": "bad"}

			next := storefront.Reduce(state, storefront.Pending(action, "r1"))

			assert.True(t, next.Loading)
			assert.Empty(t, next.Error)
			assert.Empty(t, next.ValidationErrors)
			assert.Equal(t, "previous", state.Error, "input must not be mutated")
		})
	}
}

func TestReduce_LoginFulfilled(t *testing.T) {
	state := storefront.Reduce(storefront.InitialSessionState(), storefront.Pending(storefront.ActionLogin, "r1"))
	user := testUser(storefront.RoleUser)

	next := storefront.Reduce(state, storefront.Fulfilled(storefront.ActionLogin, "r1", user))

	assert.False(t, next.Loading)
	assert.True(t, next.IsAuthenticated)
	assert.Equal(t, "u1", next.User.ID)

	user.Name = "changed"
	assert.Equal(t, "Ada", next.User.Name)
}

func TestReduce_SignupRejected(t *testing.T) {
	t.Run("validation failure fills field map", func(t *testing.T) {
		failure := &storefront.ActionError{
			Action: storefront.ActionSignup,
			Kind:   storefront.FailureValidation,
			Fields: map[string]string{"name": storefront.MsgNameTooShort},
		}
		next := storefront.Reduce(storefront.InitialSessionState(), storefront.Rejected(storefront.ActionSignup, "r1", failure))

		assert.False(t, next.Loading)
		assert.Empty(t, next.Error)
		assert.Equal(t, storefront.MsgNameTooShort, next.ValidationErrors["name"])
	})

	t.Run("message failure sets error", func(t *testing.T) {
		failure := &storefront.ActionError{
			Action:  storefront.ActionSignup,
			Kind:    storefront.FailureMessage,
			Message: "Email already in use",
		}
		next := storefront.Reduce(storefront.InitialSessionState(), storefront.Rejected(storefront.ActionSignup, "r1", failure))

		assert.Equal(t, "Email already in use", next.Error)
		assert.Empty(t, next.ValidationErrors)
	})
}

func TestReduce_LoginRejectedKeepsUser(t *testing.T) {
	state := storefront.InitialSessionState()
	state = storefront.Reduce(state, storefront.Action{Type: storefront.ActionSetUser, User: testUser(storefront.RoleUser)})

	failure := &storefront.ActionError{Action: storefront.ActionLogin, Message: "Invalid credentials"}
	next := storefront.Reduce(state, storefront.Rejected(storefront.ActionLogin, "r1", failure))

	assert.Equal(t, "Invalid credentials", next.Error)
	assert.True(t, next.IsAuthenticated)
}

func TestReduce_LogoutAlwaysClearsUser(t *testing.T) {
	state := storefront.Reduce(storefront.InitialSessionState(), storefront.Action{
		Type: storefront.ActionSetUser,
		User: testUser(storefront.RoleAdmin),
	})
	state = storefront.Reduce(state, storefront.Pending(storefront.ActionLogout, "r1"))

	fulfilled := storefront.Reduce(state, storefront.Fulfilled(storefront.ActionLogout, "r1", nil))
	assert.Nil(t, fulfilled.User)
	assert.False(t, fulfilled.IsAuthenticated)
	assert.False(t, fulfilled.Loading)

	failure := &storefront.ActionError{Action: storefront.ActionLogout, Message: storefront.MsgLogoutFailed}
	rejected := storefront.Reduce(state, storefront.Rejected(storefront.ActionLogout, "r1", failure))
	assert.Nil(t, rejected.User)
	assert.False(t, rejected.IsAuthenticated)
	assert.False(t, rejected.Loading)
	assert.Equal(t, storefront.MsgLogoutFailed, rejected.Error)
}

func TestReduce_UpdateProfile(t *testing.T) {
	state := storefront.Reduce(storefront.InitialSessionState(), storefront.Action{
		Type: storefront.ActionSetUser,
		User: testUser(storefront.RoleUser),
	})

	updated := testUser(storefront.RoleUser)
	updated.Name = "Ada L"
	next := storefront.Reduce(state, storefront.Fulfilled(storefront.ActionUpdateProfile, "r1", updated))
	assert.Equal(t, "Ada L", next.User.Name)
	assert.True(t, next.IsAuthenticated)

	failure := &storefront.ActionError{Action: storefront.ActionUpdateProfile, Message: "Email taken"}
	next = storefront.Reduce(next, storefront.Rejected(storefront.ActionUpdateProfile, "r2", failure))
	assert.Equal(t, "Email taken", next.Error)
	assert.Equal(t, "Ada L", next.User.Name)
}

func TestReduce_SyncActions(t *testing.T) {
	state := storefront.InitialSessionState()
	state.Error = "boom"
	state.ValidationErrors = map[string]string{"email": "bad"}

	next := storefront.Reduce(state, storefront.Action{Type: storefront.ActionClearValidationErrors})
	assert.Equal(t, "boom", next.Error)
	assert.Empty(t, next.ValidationErrors)

	next = storefront.Reduce(state, storefront.Action{Type: storefront.ActionClearError})
	assert.Empty(t, next.Error)
	assert.Empty(t, next.ValidationErrors)

	next = storefront.Reduce(next, storefront.Action{Type: storefront.ActionSetUser, User: testUser(storefront.RoleUser)})
	assert.True(t, next.IsAuthenticated)

	next = storefront.Reduce(next, storefront.Action{Type: storefront.ActionSetUser})
	assert.False(t, next.IsAuthenticated)
	assert.Nil(t, next.User)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "auth/login/pending", storefront.Pending(storefront.ActionLogin, "").String())
	assert.Equal(t, "auth/clearError", storefront.Action{Type: storefront.ActionClearError}.String())
}
