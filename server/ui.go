package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-storefront"
)

// UIPatchPayload toggles the ephemeral UI flags. Nil fields are left as is.
type UIPatchPayload struct {
	MobileMenuOpen *bool  `json:"mobileMenuOpen"`
	SidebarOpen    *bool  `json:"sidebarOpen"`
	Theme          string `json:"theme"`
	HideToast      bool   `json:"hideToast"`
}

func (c *Controller) UIShow(ctx *fiber.Ctx) error {
	return ctx.JSON(c.UI.State())
}

func (c *Controller) UIPatch(ctx *fiber.Ctx) error {
	payload := new(UIPatchPayload)
	if err := ctx.BodyParser(payload); err != nil {
		return c.badBody(ctx, err)
	}

	if payload.MobileMenuOpen != nil {
		c.UI.SetMobileMenuOpen(*payload.MobileMenuOpen)
	}
	if payload.SidebarOpen != nil {
		c.UI.SetSidebarOpen(*payload.SidebarOpen)
	}
	if payload.Theme != "" {
		c.UI.SetTheme(storefront.Theme(payload.Theme))
	}
	if payload.HideToast {
		c.UI.HideToast()
	}

	return ctx.JSON(c.UI.State())
}
