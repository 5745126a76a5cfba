package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/middleware/adminguard"
)

const (
	csrfHeader     = "X-Csrf-Token"
	csrfExpiration = time.Hour
)

// Routes holds the paths the controller mounts
type Routes struct {
	Health  string
	Session string
	Signup  string
	Login   string
	Logout  string
	Profile string
	UI      string
	Admin   string
}

// Controller exposes the local session over HTTP. It serves a single
// session, the one held by Auther's store.
type Controller struct {
	Debug  bool
	CSRF   bool
	Logger storefront.Logger
	Auther *storefront.Auther
	Guard  *storefront.RouteGuard
	UI     *storefront.UIStore
	Routes *Routes
}

type ControllerOption func(*Controller) *Controller

func WithAuther(a *storefront.Auther) ControllerOption {
	return func(c *Controller) *Controller {
		c.Auther = a
		return c
	}
}

func WithGuard(g *storefront.RouteGuard) ControllerOption {
	return func(c *Controller) *Controller {
		c.Guard = g
		return c
	}
}

func WithUIStore(ui *storefront.UIStore) ControllerOption {
	return func(c *Controller) *Controller {
		c.UI = ui
		return c
	}
}

func WithLogger(l storefront.Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

// WithCSRF requires a double submit token on unsafe methods
func WithCSRF(enabled bool) ControllerOption {
	return func(c *Controller) *Controller {
		c.CSRF = enabled
		return c
	}
}

func WithDebug(debug bool) ControllerOption {
	return func(c *Controller) *Controller {
		c.Debug = debug
		return c
	}
}

// NewController panics without an Auther or a Guard
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger: storefront.NopLogger{},
		Routes: &Routes{
			Health:  "/healthz",
			Session: "/session",
			Signup:  "/auth/signup",
			Login:   "/auth/login",
			Logout:  "/auth/logout",
			Profile: "/auth/profile",
			UI:      "/ui",
			Admin:   "/admin",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Auther in storefront controller...")
	}

	if c.Guard == nil {
		panic("Missing RouteGuard in storefront controller...")
	}

	if c.UI == nil {
		c.UI = storefront.NewUIStore()
	}

	return c
}

// Register mounts every route on app
func Register(app fiber.Router, c *Controller) {
	app.Get(c.Routes.Health, c.Health)
	app.Get(c.Routes.Session, c.SessionShow)
	app.Post(c.Routes.Signup, c.SignupPost)
	app.Post(c.Routes.Login, c.LoginPost)
	app.Post(c.Routes.Logout, c.LogoutPost)
	app.Patch(c.Routes.Profile, c.ProfilePatch)
	app.Get(c.Routes.UI, c.UIShow)
	app.Patch(c.Routes.UI, c.UIPatch)

	admin := app.Group(c.Routes.Admin, adminguard.New(c.Guard))
	admin.Get("/", c.AdminShow)
}

// New builds a fiber app with every route mounted
func New(c *Controller) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          c.errorHandler,
	})
	if c.CSRF {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "header:" + csrfHeader,
			CookieSameSite: "Strict",
			Expiration:     csrfExpiration,
		}))
	}
	Register(app, c)
	return app
}

func (c *Controller) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (c *Controller) SessionShow(ctx *fiber.Ctx) error {
	return ctx.JSON(c.Auther.Store().State())
}

func (c *Controller) SignupPost(ctx *fiber.Ctx) error {
	payload := new(storefront.SignupPayload)
	if err := ctx.BodyParser(payload); err != nil {
		return c.badBody(ctx, err)
	}

	user, err := c.Auther.Signup(ctx.UserContext(), *payload)
	if err != nil {
		return c.actionFailed(ctx, err)
	}

	c.UI.ShowToast("Account created", storefront.ToastSuccess, 0)
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (c *Controller) LoginPost(ctx *fiber.Ctx) error {
	payload := new(storefront.Credentials)
	if err := ctx.BodyParser(payload); err != nil {
		return c.badBody(ctx, err)
	}

	user, err := c.Auther.Login(ctx.UserContext(), *payload)
	if err != nil {
		return c.actionFailed(ctx, err)
	}

	c.UI.ShowToast("Welcome back", storefront.ToastSuccess, 0)
	return ctx.JSON(fiber.Map{"user": user})
}

func (c *Controller) LogoutPost(ctx *fiber.Ctx) error {
	if err := c.Auther.Logout(ctx.UserContext()); err != nil {
		return c.actionFailed(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *Controller) ProfilePatch(ctx *fiber.Ctx) error {
	payload := new(storefront.ProfileUpdate)
	if err := ctx.BodyParser(payload); err != nil {
		return c.badBody(ctx, err)
	}

	user, err := c.Auther.UpdateProfile(ctx.UserContext(), *payload)
	if err != nil {
		return c.actionFailed(ctx, err)
	}

	return ctx.JSON(fiber.Map{"user": user})
}

func (c *Controller) AdminShow(ctx *fiber.Ctx) error {
	user, _ := adminguard.UserFromLocals(ctx)
	return ctx.JSON(fiber.Map{"user": user})
}

func (c *Controller) badBody(ctx *fiber.Ctx, err error) error {
	c.Logger.Error("parse payload", "path", ctx.Path(), "error", err)
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Failed to parse body",
	})
}

// actionFailed renders the session after a failed action, the state already
// carries the normalized error.
func (c *Controller) actionFailed(ctx *fiber.Ctx, err error) error {
	state := c.Auther.Store().State()

	if c.Debug {
		c.Logger.Debug("action failed", "path", ctx.Path(), "state", print.MaybePrettyJSON(state))
	}

	body := fiber.Map{
		"error":            state.Error,
		"validationErrors": state.ValidationErrors,
	}
	if actionErr, ok := storefront.AsActionError(err); ok {
		body["message"] = actionErr.FirstMessage()
	}

	return ctx.Status(failureStatus(err)).JSON(body)
}

func (c *Controller) errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	c.Logger.Error("request error", "path", ctx.Path(), "status", code, "error", err)
	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func failureStatus(err error) int {
	var apiErr *storefront.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest:
		return apiErr.StatusCode
	case storefront.IsValidation(err):
		return fiber.StatusUnprocessableEntity
	case storefront.IsRequiredCredentials(err):
		return fiber.StatusBadRequest
	case storefront.IsTransportError(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusBadRequest
	}
}
