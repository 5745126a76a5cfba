package adminguard

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-storefront"
)

// DefaultContextKey is the Locals key holding the admitted *storefront.User
const DefaultContextKey = "user"

// DefaultRetryAfter is the Retry-After value, in seconds, of the loading
// placeholder
const DefaultRetryAfter = 1

// Config defines the configuration for the admin guard middleware
type Config struct {
	// Skip defines a function to skip middleware
	Skip func(*fiber.Ctx) bool

	// ContextKey defines the Locals key for the admitted user
	ContextKey string

	// RedirectStatus is the status used to send visitors home
	RedirectStatus int

	// RetryAfter is sent with the loading placeholder
	RetryAfter int

	// LoadingHandler renders the placeholder while the session is ambiguous
	LoadingHandler fiber.Handler
}

// Guard is satisfied by *storefront.RouteGuard
type Guard interface {
	Check(ctx context.Context) storefront.GuardResult
}

// New creates the admin guard middleware. The guard is evaluated on every
// request so a logout or role change takes effect on the next one.
func New(guard Guard, config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Skip != nil && cfg.Skip(c) {
			return c.Next()
		}

		result := guard.Check(c.UserContext())

		switch result.Decision {
		case storefront.GuardAllow:
			c.Locals(cfg.ContextKey, result.User)
			c.SetUserContext(storefront.WithUser(c.UserContext(), result.User))
			return c.Next()

		case storefront.GuardLoading:
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(cfg.RetryAfter))
			c.Set(fiber.HeaderCacheControl, "no-store")
			return cfg.LoadingHandler(c)

		default:
			return c.Redirect(result.Redirect, cfg.RedirectStatus)
		}
	}
}

// UserFromLocals returns the user the guard admitted
func UserFromLocals(c *fiber.Ctx, key ...string) (*storefront.User, bool) {
	k := DefaultContextKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}
	user, ok := c.Locals(k).(*storefront.User)
	return user, ok && user != nil
}

func defaultLoadingHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "loading",
	})
}

func configDefault(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.RedirectStatus == 0 {
		cfg.RedirectStatus = fiber.StatusFound
	}
	if cfg.RetryAfter <= 0 {
		cfg.RetryAfter = DefaultRetryAfter
	}
	if cfg.LoadingHandler == nil {
		cfg.LoadingHandler = defaultLoadingHandler
	}

	return cfg
}
