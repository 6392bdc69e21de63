package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cosecha.
const (
	HarvestPartial = "partial" // cosecha parcial; el ciclo sigue en growing
	HarvestTotal   = "total"   // cosecha final; el ciclo pasa a estado harvest
)

// Harvest representa una cosecha sobre un ciclo. Cada cosecha origina un
// movimiento harvest en el libro de existencias que la referencia.
type Harvest struct {
	ID          string
	PondID      string
	CycleID     string
	HarvestDate time.Time
	Quantity    int64  // animales cosechados
	Kind        string // partial, total
	// TotalWeightKg peso total cosechado en kilogramos.
	TotalWeightKg decimal.Decimal
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
}
