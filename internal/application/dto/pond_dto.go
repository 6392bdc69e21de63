package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePondRequest body para POST /api/ponds.
type CreatePondRequest struct {
	Name     string          `json:"name"`
	AreaM2   decimal.Decimal `json:"area_m2"`
	Location string          `json:"location,omitempty"`
}

// PondResponse representación de un estanque en respuestas.
type PondResponse struct {
	ID        string          `json:"id"`
	FarmID    string          `json:"farm_id"`
	Name      string          `json:"name"`
	AreaM2    decimal.Decimal `json:"area_m2"`
	Location  string          `json:"location,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
