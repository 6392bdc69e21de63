package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterSamplingRequest body para POST /api/samplings. Si
// mortality_count > 0 el muestreo genera además un movimiento mortality
// en la misma transacción.
type RegisterSamplingRequest struct {
	PondID         string          `json:"pond_id"`
	CycleID        string          `json:"cycle_id"`
	SamplingDate   time.Time       `json:"sampling_date"`
	SampleSize     int             `json:"sample_size"`
	AvgWeightGram  decimal.Decimal `json:"avg_weight_gram"`
	MortalityCount int64           `json:"mortality_count"`
	Note           string          `json:"note,omitempty"`
}

// SamplingResponse representación de un muestreo, con el saldo y la
// biomasa estimada tras aplicar la mortalidad observada.
type SamplingResponse struct {
	ID             string          `json:"id"`
	PondID         string          `json:"pond_id"`
	CycleID        string          `json:"cycle_id"`
	SamplingDate   time.Time       `json:"sampling_date"`
	SampleSize     int             `json:"sample_size"`
	AvgWeightGram  decimal.Decimal `json:"avg_weight_gram"`
	MortalityCount int64           `json:"mortality_count"`
	Balance        int64           `json:"balance"`
	BiomassKg      decimal.Decimal `json:"biomass_kg"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RegisterHarvestRequest body para POST /api/harvests. Kind total mueve el
// ciclo a estado harvest.
type RegisterHarvestRequest struct {
	PondID        string          `json:"pond_id"`
	CycleID       string          `json:"cycle_id"`
	HarvestDate   time.Time       `json:"harvest_date"`
	Quantity      int64           `json:"quantity"`
	Kind          string          `json:"kind"` // partial | total
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
	Note          string          `json:"note,omitempty"`
}

// HarvestResponse representación de una cosecha con el saldo resultante.
type HarvestResponse struct {
	ID            string          `json:"id"`
	PondID        string          `json:"pond_id"`
	CycleID       string          `json:"cycle_id"`
	HarvestDate   time.Time       `json:"harvest_date"`
	Quantity      int64           `json:"quantity"`
	Kind          string          `json:"kind"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
	Balance       int64           `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}
