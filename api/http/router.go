package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/shop/api/http/handlers"
	"github.com/artem13815/shop/pkg/security/jwt"
	"github.com/artem13815/shop/pkg/user"
)

// Handlers bundles the route handlers wired in main.
type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Category *handlers.CategoryHandler
	Product  *handlers.ProductHandler
	Order    *handlers.OrderHandler
	Health   *handlers.HealthHandler
}

// Register wires all HTTP routes onto given Fiber app.
// authMW establishes identity+role from the token; role guards run after it.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	adminOnly := jwt.RequireRoles(user.RoleAdmin)
	anyRole := jwt.RequireRoles(user.RoleCustomer, user.RoleAdmin)

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	// User directory: admin surface, except reading your own record
	u := v1.Group("/user", authMW)
	u.Get("/", adminOnly, h.User.List)
	u.Get("/:id", anyRole, h.User.GetByID)
	u.Patch("/:id/role", adminOnly, h.User.UpdateRole)
	u.Delete("/:id", adminOnly, h.User.Delete)

	// Category catalog: reads for any caller, writes for admins
	cg := v1.Group("/category", authMW)
	cg.Get("/", anyRole, h.Category.List)
	cg.Post("/", adminOnly, h.Category.Create)
	cg.Patch("/:id", adminOnly, h.Category.Update)
	cg.Delete("/:id", adminOnly, h.Category.Delete)

	// Product catalog: same policy as categories
	pg := v1.Group("/product", authMW)
	pg.Get("/", anyRole, h.Product.List)
	pg.Get("/:id", anyRole, h.Product.GetByID)
	pg.Post("/", adminOnly, h.Product.Create)
	pg.Patch("/:id", adminOnly, h.Product.Update)
	pg.Delete("/:id", adminOnly, h.Product.Delete)

	// Order ledger: customers place and read orders, admins manage them
	og := v1.Group("/order", authMW)
	og.Get("/", anyRole, h.Order.List)
	og.Get("/:id", anyRole, h.Order.GetByID)
	og.Post("/", anyRole, h.Order.Create)
	og.Patch("/:id", adminOnly, h.Order.UpdateStatus)
	og.Delete("/:id", adminOnly, h.Order.Delete)
}
