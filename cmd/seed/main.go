// seed puebla la base con datos de demostración: una granja, un usuario
// admin, dos estanques y un ciclo abierto con su siembra inicial.
//
// Uso: go run ./cmd/seed
// Idempotencia: si la granja demo ya existe el comando falla rápido; está
// pensado para bases recién migradas.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Acuicola-api/internal/application/auth"
	"github.com/jhoicas/Acuicola-api/internal/application/cycle"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/application/usecase"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Acuicola-api/pkg/config"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	farmRepo := postgres.NewFarmRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	pondRepo := postgres.NewPondRepository(pool)
	cycleRepo := postgres.NewCycleRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	farmUC := usecase.NewFarmUseCase(farmRepo)
	pondUC := usecase.NewPondUseCase(pondRepo)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, movementRepo, cycleRepo, pondRepo)
	cycleUC := cycle.NewCycleUseCase(txRunner, ledgerUC, cycleRepo, pondRepo)
	authUC := auth.NewAuthUseCase(userRepo, farmRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	farm, err := farmUC.Create(dto.CreateFarmRequest{
		Name:    "Granja Demo Tilapia",
		TaxID:   "900123456-7",
		Address: "Vereda La Esperanza, Huila",
		Phone:   "+57 300 000 0000",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear granja: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("granja:   %s (%s)\n", farm.Name, farm.ID)

	admin, err := authUC.RegisterUser(dto.RegisterRequest{
		FarmID:   farm.ID,
		Email:    "admin@demo.local",
		Password: "Demo123!",
		Name:     "Administrador Demo",
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear usuario admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin:    %s (%s)\n", admin.Email, admin.ID)

	pondA, err := pondUC.Create(farm.ID, dto.CreatePondRequest{
		Name:     "Estanque A1",
		AreaM2:   decimal.NewFromInt(1200),
		Location: "Lote norte",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear estanque A1: %v\n", err)
		os.Exit(1)
	}
	pondB, err := pondUC.Create(farm.ID, dto.CreatePondRequest{
		Name:     "Estanque A2",
		AreaM2:   decimal.NewFromInt(800),
		Location: "Lote norte",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear estanque A2: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("estanques: %s, %s\n", pondA.ID, pondB.ID)

	cy, err := cycleUC.CreateCycle(ctx, farm.ID, admin.ID, dto.CreateCycleRequest{
		PondID:          pondA.ID,
		Species:         "tilapia roja",
		InitialQuantity: 10000,
		StockingDate:    time.Now().AddDate(0, 0, -1),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir ciclo demo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("ciclo:    %s (siembra %d, movimiento %s)\n", cy.ID, cy.InitialQuantity, cy.OpeningMovementID)
}
