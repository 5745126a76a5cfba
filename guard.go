package storefront

import (
	"context"
)

const (
	defaultHomeRoute = "/"
	defaultAdminRole = string(RoleAdmin)
)

// GuardDecision is what an admin scoped view should do
type GuardDecision int

const (
	// GuardLoading renders a placeholder, restore or an action is in flight
	GuardLoading GuardDecision = iota
	// GuardRedirect sends the visitor to the home route
	GuardRedirect
	// GuardAllow renders the protected view
	GuardAllow
)

func (d GuardDecision) String() string {
	switch d {
	case GuardLoading:
		return "loading"
	case GuardRedirect:
		return "redirect"
	case GuardAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// EvaluateGuard decides access from a session snapshot. It never redirects
// while the session is ambiguous: an action is loading, or a token exists
// but no user has been restored yet.
func EvaluateGuard(state SessionState, hasToken bool, requiredRole string) GuardDecision {
	if state.Loading || (hasToken && state.User == nil) {
		return GuardLoading
	}

	if state.User == nil || !state.User.Role.Is(requiredRole) {
		return GuardRedirect
	}

	return GuardAllow
}

// GuardResult is a decision plus what the caller needs to act on it
type GuardResult struct {
	Decision GuardDecision
	Redirect string
	User     *User
}

// RouteGuard gates admin scoped views on the session store.
type RouteGuard struct {
	store        *SessionStore
	tokens       TokenSource
	requiredRole string
	homeRoute    string
	logger       Logger
}

// NewRouteGuard returns a guard requiring the admin role. cfg may be nil.
func NewRouteGuard(store *SessionStore, tokens TokenSource, cfg Config) *RouteGuard {
	g := &RouteGuard{
		store:        store,
		tokens:       tokens,
		requiredRole: defaultAdminRole,
		homeRoute:    defaultHomeRoute,
		logger:       defLogger{},
	}

	if cfg != nil {
		if role := cfg.GetAdminRole(); role != "" {
			g.requiredRole = role
		}
		if home := cfg.GetHomeRoute(); home != "" {
			g.homeRoute = home
		}
	}

	return g
}

func (g *RouteGuard) WithLogger(logger Logger) *RouteGuard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// HomeRoute is where rejected visitors are sent
func (g *RouteGuard) HomeRoute() string {
	return g.homeRoute
}

// Check evaluates the current session
func (g *RouteGuard) Check(ctx context.Context) GuardResult {
	return g.evaluate(ctx, g.store.State())
}

// Watch calls fn with the current result and again after every session
// change, so a logout or role change revokes access right away.
func (g *RouteGuard) Watch(ctx context.Context, fn func(GuardResult)) (stop func()) {
	return g.store.SubscribeCurrent(func(state SessionState) {
		fn(g.evaluate(ctx, state))
	})
}

func (g *RouteGuard) evaluate(ctx context.Context, state SessionState) GuardResult {
	decision := EvaluateGuard(state, g.hasToken(ctx), g.requiredRole)

	result := GuardResult{Decision: decision}
	switch decision {
	case GuardRedirect:
		result.Redirect = g.homeRoute
	case GuardAllow:
		result.User = state.User
	}

	return result
}

func (g *RouteGuard) hasToken(ctx context.Context) bool {
	if g.tokens == nil {
		return false
	}
	token, err := g.tokens.Get(ctx)
	if err != nil {
		g.logger.Warn("guard could not read token", "error", err)
		return false
	}
	return token != ""
}
