package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Acuicola-api/internal/application/auth"
	"github.com/jhoicas/Acuicola-api/internal/application/cycle"
	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/application/production"
	"github.com/jhoicas/Acuicola-api/internal/application/usecase"
	"github.com/jhoicas/Acuicola-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Acuicola-api/internal/interfaces/http"
	"github.com/jhoicas/Acuicola-api/pkg/config"
	"github.com/jhoicas/Acuicola-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	farmRepo := postgres.NewFarmRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	pondRepo := postgres.NewPondRepository(pool)
	cycleRepo := postgres.NewCycleRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, movementRepo, cycleRepo, pondRepo)
	cycleUC := cycle.NewCycleUseCase(txRunner, ledgerUC, cycleRepo, pondRepo)
	productionUC := production.NewProductionUseCase(txRunner, ledgerUC, cycleRepo, pondRepo)
	farmUC := usecase.NewFarmUseCase(farmRepo)
	pondUC := usecase.NewPondUseCase(pondRepo)
	authUC := auth.NewAuthUseCase(userRepo, farmRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Acuicola API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FarmUC:       farmUC,
		PondUC:       pondUC,
		LedgerUC:     ledgerUC,
		CycleUC:      cycleUC,
		ProductionUC: productionUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

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
