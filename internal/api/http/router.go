package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/medikita/platform/internal/api/http/handlers"
	"github.com/medikita/platform/internal/auth"
	"github.com/medikita/platform/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Catalog   *handlers.CatalogHandler
	Content   *handlers.ContentHandler
	Directory *handlers.DirectoryHandler
	Orders    *handlers.OrdersHandler
	Gate      *auth.Gate
	Limiter   *RateLimiter
	Metrics   *observability.Metrics
}

// RegisterRoutes wires HTTP routes. The session gate runs on every
// request; /admin routes rely on its fail-closed handling so no extra
// role check appears here.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Use(cfg.Gate.Handle)

	authGroup := app.Group("/auth", cfg.Limiter.Handle)
	authGroup.Get("/login", cfg.Auth.Login)
	authGroup.Get("/callback", cfg.Auth.Callback)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Auth.Me)

	api := app.Group("/api")
	api.Get("/products", cfg.Catalog.ListProducts)
	api.Get("/products/:slug", cfg.Catalog.GetProduct)
	api.Get("/articles", cfg.Content.ListArticles)
	api.Get("/articles/:slug", cfg.Content.GetArticle)
	api.Get("/webinars", cfg.Content.ListWebinars)
	api.Get("/doctors", cfg.Directory.ListDoctors)
	api.Get("/partners", cfg.Directory.ListPartners)

	orders := api.Group("/orders", auth.RequireUser())
	orders.Post("/", cfg.Orders.CreateOrder)
	orders.Get("/", cfg.Orders.ListOrders)
	orders.Get("/:ref", cfg.Orders.GetOrder)
	orders.Post("/:ref/sync", cfg.Orders.SyncOrder)

	admin := app.Group("/admin")
	admin.Get("/products", cfg.Catalog.AdminListProducts)
	admin.Post("/products", cfg.Catalog.AdminCreateProduct)
	admin.Put("/products/:id", cfg.Catalog.AdminUpdateProduct)
	admin.Delete("/products/:id", cfg.Catalog.AdminDeleteProduct)

	admin.Get("/articles", cfg.Content.AdminListArticles)
	admin.Post("/articles", cfg.Content.AdminCreateArticle)
	admin.Put("/articles/:id", cfg.Content.AdminUpdateArticle)
	admin.Delete("/articles/:id", cfg.Content.AdminDeleteArticle)

	admin.Get("/webinars", cfg.Content.AdminListWebinars)
	admin.Post("/webinars", cfg.Content.AdminCreateWebinar)
	admin.Put("/webinars/:id", cfg.Content.AdminUpdateWebinar)
	admin.Delete("/webinars/:id", cfg.Content.AdminDeleteWebinar)

	admin.Get("/doctors", cfg.Directory.AdminListDoctors)
	admin.Post("/doctors", cfg.Directory.AdminCreateDoctor)
	admin.Put("/doctors/:id", cfg.Directory.AdminUpdateDoctor)
	admin.Delete("/doctors/:id", cfg.Directory.AdminDeleteDoctor)

	admin.Get("/partners", cfg.Directory.AdminListPartners)
	admin.Post("/partners", cfg.Directory.AdminCreatePartner)
	admin.Put("/partners/:id", cfg.Directory.AdminUpdatePartner)
	admin.Delete("/partners/:id", cfg.Directory.AdminDeletePartner)

	admin.Get("/orders", cfg.Orders.AdminListOrders)
	admin.Post("/orders/:ref/invoice/sync", cfg.Orders.AdminSyncOrder)
}
