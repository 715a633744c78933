package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/vetstock-api/internal/application/analytics"
	"github.com/jhoicas/vetstock-api/internal/application/inventory"
	"github.com/jhoicas/vetstock-api/internal/application/usecase"
	"github.com/jhoicas/vetstock-api/pkg/logger"
	"github.com/jhoicas/vetstock-api/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	SupplyUC      *usecase.SupplyUseCase
	MovementUC    *inventory.MovementUseCase
	Replenishment *inventory.ReplenishmentUseCase
	SaleUC        *inventory.SaleUseCase
	SupplyStockUC *inventory.SupplyStockUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Validator     validator.Validator
}

// AppOptions configuración de la app Fiber.
type AppOptions struct {
	Name string
	// DocsPath ruta al swagger.json; vacío deshabilita /docs.
	DocsPath string
	Log      *logger.Logger
}

// NewApp crea la app Fiber con middlewares, /health y las rutas de la API.
func NewApp(opts AppOptions, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(requestid.New())
	if opts.Log != nil {
		app.Use(RequestLogger(opts.Log))
	}
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if opts.DocsPath != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: opts.DocsPath,
			Path:     "docs",
			Title:    "VetStock API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementUC, deps.Validator)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/adjust", productHandler.Adjust)

	// Movements
	movements := api.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.Replenishment, deps.Validator)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Post("/batch", inventoryHandler.RegisterBatch)
	movements.Delete("/:id", inventoryHandler.DeleteMovement)
	api.Get("/replenishment", inventoryHandler.GetReplenishmentList)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Validator)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Record)
	sales.Patch("/:id/status", saleHandler.UpdateStatus)

	// Operational supplies
	supplies := api.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.SupplyUC, deps.SupplyStockUC, deps.Validator)
	supplies.Post("/", supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Put("/:id", supplyHandler.Update)
	supplies.Delete("/:id", supplyHandler.Delete)
	supplies.Post("/:id/adjust", supplyHandler.Adjust)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Validator)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
