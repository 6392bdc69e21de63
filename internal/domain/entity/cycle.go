package entity

import "time"

// Estados de un ciclo productivo.
const (
	CycleStatusGrowing = "growing" // engorde activo
	CycleStatusHarvest = "harvest" // en cosecha
	CycleStatusClosed  = "closed"  // cerrado; el estanque queda libre
)

// Cycle representa una corrida productiva (siembra) dentro de un estanque,
// desde la siembra hasta el cierre. Un estanque admite como máximo un
// ciclo en estado growing a la vez.
type Cycle struct {
	ID     string
	PondID string
	// Species etiqueta de la especie/tipo sembrado (ej. "tilapia", "camarón vannamei").
	Species           string
	InitialQuantity   int64     // población sembrada
	StockingDate      time.Time // fecha de siembra (fecha de negocio)
	Status            string    // growing, harvest, closed
	OpeningMovementID string    // movimiento seeding que abre el ciclo
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         string
}
