package storefront_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	ctx := context.Background()

	_, ok := storefront.UserFromContext(ctx)
	assert.False(t, ok)

	_, ok = storefront.UserFromContext(storefront.WithUser(ctx, nil))
	assert.False(t, ok)

	user, ok := storefront.UserFromContext(storefront.WithUser(ctx, testUser(storefront.RoleUser)))
	assert.True(t, ok)
	assert.Equal(t, "u1", user.ID)
}

func TestRequestIDContext(t *testing.T) {
	_, ok := storefront.RequestIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := storefront.RequestIDFromContext(storefront.WithRequestID(context.Background(), "req-1"))
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
}
