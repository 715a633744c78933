package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/vetstock-api/internal/application/analytics"
	"github.com/jhoicas/vetstock-api/internal/application/inventory"
	"github.com/jhoicas/vetstock-api/internal/application/usecase"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
	"github.com/jhoicas/vetstock-api/internal/infrastructure/memory"
	"github.com/jhoicas/vetstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/vetstock-api/internal/interfaces/http"
	"github.com/jhoicas/vetstock-api/pkg/config"
	"github.com/jhoicas/vetstock-api/pkg/logger"
	"github.com/jhoicas/vetstock-api/pkg/validator"
)

// storage repositorios y TxRunner de la implementación elegida.
type storage struct {
	products   repository.ProductRepository
	movements  repository.MovementRepository
	sales      repository.SaleRepository
	supplies   repository.SupplyRepository
	categories repository.CategoryRepository
	txRunner   inventory.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	txRunner := store.txRunner
	deps := httpRouter.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(store.products, store.categories),
		CategoryUC:    usecase.NewCategoryUseCase(store.categories, store.products),
		SupplyUC:      usecase.NewSupplyUseCase(store.supplies),
		MovementUC:    inventory.NewMovementUseCase(txRunner, store.products, store.movements),
		Replenishment: inventory.NewReplenishmentUseCase(store.products, store.sales),
		SaleUC:        inventory.NewSaleUseCase(txRunner, store.products, store.sales),
		SupplyStockUC: inventory.NewSupplyStockUseCase(txRunner),
		DashboardUC:   appanalytics.NewDashboardUseCase(store.products, store.movements, store.sales, store.supplies),
		Validator:     validator.MustDefault(),
	}

	docsPath := cfg.HTTP.DocsPath
	if _, err := os.Stat(docsPath); docsPath != "" && err != nil {
		log.Warn().Str("path", docsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
		docsPath = ""
	}

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:     cfg.App.Name,
		DocsPath: docsPath,
		Log:      log.Component("http"),
	}, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			products:   s.Products(),
			movements:  s.Movements(),
			sales:      s.Sales(),
			supplies:   s.Supplies(),
			categories: s.Categories(),
			txRunner:   s,
			close:      func() {},
		}, nil
	}

	log.Info().Str("dsn", postgres.RedactDSN(cfg.DB.ConnectionString())).Msg("conectando a PostgreSQL")
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, postgres.MigrateUp); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		products:   postgres.NewProductRepository(pool),
		movements:  postgres.NewMovementRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		supplies:   postgres.NewSupplyRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		txRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}
