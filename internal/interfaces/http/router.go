package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acuicola-api/internal/application/auth"
	"github.com/jhoicas/Acuicola-api/internal/application/cycle"
	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/application/production"
	"github.com/jhoicas/Acuicola-api/internal/application/usecase"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FarmUC       *usecase.FarmUseCase
	PondUC       *usecase.PondUseCase
	LedgerUC     *ledger.LedgerUseCase
	CycleUC      *cycle.CycleUseCase
	ProductionUC *production.ProductionUseCase
	AuthUC       *auth.AuthUseCase
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

	// Farms (alta pública para el onboarding; lectura protegida)
	farmHandler := NewFarmHandler(deps.FarmUC)
	api.Post("/farms", farmHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/farms/me", farmHandler.Get)

	// Ponds (protegido)
	ponds := protected.Group("/ponds")
	pondHandler := NewPondHandler(deps.PondUC)
	ponds.Post("/", RequireRole(entity.RoleAdmin, entity.RoleTeknisi), pondHandler.Create)
	ponds.Get("/", pondHandler.List)
	ponds.Get("/:id", pondHandler.Get)

	// Cycles (protegido; abrir y cerrar ciclos exige rol técnico o admin)
	cycles := protected.Group("/cycles")
	cycleHandler := NewCycleHandler(deps.CycleUC)
	cycles.Post("/", RequireRole(entity.RoleAdmin, entity.RoleTeknisi), cycleHandler.Create)
	cycles.Post("/:id/close", RequireRole(entity.RoleAdmin, entity.RoleTeknisi), cycleHandler.Close)
	cycles.Get("/", cycleHandler.ListByPond)
	cycles.Get("/:id", cycleHandler.Get)

	// Ledger (protegido): ajustes manuales, traslados, saldo y kardex
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.PondUC)
	ledgerGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleTeknisi), ledgerHandler.RegisterMovement)
	ledgerGroup.Post("/transfers", RequireRole(entity.RoleAdmin, entity.RoleTeknisi), ledgerHandler.Transfer)
	ledgerGroup.Get("/movements", ledgerHandler.ListMovements)
	ledgerGroup.Get("/balance", ledgerHandler.GetBalance)

	// Producción (protegido): muestreos y cosechas
	productionHandler := NewProductionHandler(deps.ProductionUC)
	protected.Post("/samplings", productionHandler.RegisterSampling)
	protected.Post("/harvests", RequireRole(entity.RoleAdmin, entity.RoleTeknisi), productionHandler.RegisterHarvest)
}
