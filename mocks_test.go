package storefront_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/mock"
)

// MockAPI implements storefront.API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Signup(ctx context.Context, payload storefront.SignupPayload) (*storefront.AuthResponse, error) {
	args := m.Called(ctx, payload)
	resp, _ := args.Get(0).(*storefront.AuthResponse)
	return resp, args.Error(1)
}

func (m *MockAPI) Login(ctx context.Context, credentials storefront.Credentials) (*storefront.AuthResponse, error) {
	args := m.Called(ctx, credentials)
	resp, _ := args.Get(0).(*storefront.AuthResponse)
	return resp, args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAPI) Me(ctx context.Context) (*storefront.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*storefront.User)
	return user, args.Error(1)
}

func (m *MockAPI) UpdateMe(ctx context.Context, update storefront.ProfileUpdate) (*storefront.User, error) {
	args := m.Called(ctx, update)
	user, _ := args.Get(0).(*storefront.User)
	return user, args.Error(1)
}

// MockTokenStore implements storefront.TokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Get(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Set(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenStore) Remove(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memTokens is a plain in memory token store for tests that only care
// about the stored value.
type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Get(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) Remove(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// recordingSink collects activity events
type recordingSink struct {
	mu     sync.Mutex
	events []storefront.ActivityEvent
}

func (r *recordingSink) Record(_ context.Context, event storefront.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingSink) types() []storefront.ActivityEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]storefront.ActivityEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

func testUser(role storefront.UserRole) *storefront.User {
	return &storefront.User{
		ID:    "u1",
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  role,
	}
}
