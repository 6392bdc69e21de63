package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pond representa un estanque (kolam): la unidad física de cría cuya
// población viva rastrea el libro de existencias.
type Pond struct {
	ID     string
	FarmID string
	Name   string
	// AreaM2 superficie del espejo de agua en metros cuadrados.
	AreaM2    decimal.Decimal
	Location  string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
