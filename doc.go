// Package storefront is the client side session layer of the storefront and
// admin console. It talks to the remote e-commerce API and keeps the local
// view of who is signed in.
//
// Session store:
//   - SessionStore holds a single SessionState (user, authenticated flag,
//     loading, error, field validation errors). State only changes through
//     Reduce, a pure function over typed Actions, and every change is
//     published to subscribers.
//   - Concurrent actions are not tracked by request id: whichever settles
//     last overwrites the state.
//
// Auth actions:
//   - Auther runs Signup, Login, Logout and UpdateProfile. Each dispatches a
//     pending action, calls the API and dispatches fulfilled or rejected.
//     Failures are normalized into *ActionError, either FailureValidation with
//     a field map or FailureMessage with a single message.
//   - The bearer token lives in a TokenStore (see the tokenstore package). It
//     is written on successful signup/login and removed on logout, even when
//     the API call fails.
//
// Bootstrap and guard:
//   - Restorer reads the stored token once at start and fetches the current
//     user. A rejected token is removed and only logged.
//   - RouteGuard (and EvaluateGuard) decide whether an admin view loads,
//     redirects home, or renders. See the middleware package for the HTTP
//     adapter.
//
// UIStore holds ephemeral UI flags (toast, menus, theme) and is independent
// of the session.
package storefront
