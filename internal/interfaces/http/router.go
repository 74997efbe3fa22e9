package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casavidal/ferreteria-api/internal/application/auth"
	"github.com/casavidal/ferreteria-api/internal/application/catalog"
	"github.com/casavidal/ferreteria-api/internal/application/inventory"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *catalog.ProductUseCase
	ClientUC     *catalog.ClientUseCase
	MovementUC   *inventory.RegisterMovementUseCase
	AuthUC       *auth.UseCase
	CategoryRepo repository.CategoryRepository
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido). Las rutas fijas van antes de /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/stats", productHandler.Stats)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/out-of-stock", productHandler.ListOutOfStock)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Get("/:id/variants", productHandler.GetVariants)

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ProductUC, deps.MovementUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/products/:id/movements", inventoryHandler.History)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/stats", clientHandler.Stats)
	clients.Get("/vip", clientHandler.ListVIP)
	clients.Get("/top-scoring", clientHandler.ListTopScoring)
	clients.Get("/churn-risk", clientHandler.ListChurnRisk)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", RequireRole(entity.RoleAdmin), clientHandler.Delete)
	clients.Post("/:id/loyalty-points", clientHandler.AddLoyaltyPoints)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryRepo)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", RequireRole(entity.RoleAdmin), categoryHandler.Upsert)
}
