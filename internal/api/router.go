package api

import (
	_ "proxym-fin/docs"
	"proxym-fin/internal/api/handlers"
	"proxym-fin/pkg/auth"
	"proxym-fin/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth            *handlers.AuthHandler
	Users           *handlers.UserHandler
	Products        *handlers.ProductHandler
	Transactions    *handlers.TransactionHandler
	Recommendations *handlers.RecommendationHandler
	Chat            *handlers.ChatHandler
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Public auth surface
	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/signup", h.Auth.Signup)

	// Everything else requires a bearer token
	authed := api.Group("", middleware.AuthMiddleware(jwtManager, appLogger))
	admin := middleware.RequireAdmin(appLogger)

	users := authed.Group("/users")
	users.Get("", h.Users.List)
	users.Post("", admin, h.Users.Create)
	users.Get("/:id", h.Users.Get)
	users.Put("/:id", h.Users.Update)
	users.Delete("/:id", admin, h.Users.Delete)

	products := authed.Group("/products")
	products.Get("", h.Products.List)
	products.Post("", admin, h.Products.Create)
	products.Get("/:id", h.Products.Get)
	products.Put("/:id", admin, h.Products.Update)
	products.Delete("/:id", admin, h.Products.Delete)

	transactions := authed.Group("/transactions")
	transactions.Get("", h.Transactions.List)
	transactions.Post("", h.Transactions.Create)
	transactions.Get("/user/:id", h.Transactions.ListByUser)
	transactions.Get("/:id", h.Transactions.Get)
	transactions.Put("/:id", h.Transactions.Update)
	transactions.Delete("/:id", h.Transactions.Delete)

	authed.Get("/recommendations/:userId", h.Recommendations.ForUser)
	authed.Post("/chat", h.Chat.Ask)

	return app
}
