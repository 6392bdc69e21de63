package dto

import "time"

// CreateCycleRequest body para POST /api/cycles: abre un ciclo (siembra)
// en un estanque sin ciclo activo.
type CreateCycleRequest struct {
	PondID          string    `json:"pond_id"`
	Species         string    `json:"species"`
	InitialQuantity int64     `json:"initial_quantity"`
	StockingDate    time.Time `json:"stocking_date"`
}

// CycleResponse representación de un ciclo en respuestas.
type CycleResponse struct {
	ID                string    `json:"id"`
	PondID            string    `json:"pond_id"`
	Species           string    `json:"species"`
	InitialQuantity   int64     `json:"initial_quantity"`
	StockingDate      time.Time `json:"stocking_date"`
	Status            string    `json:"status"`
	OpeningMovementID string    `json:"opening_movement_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
