package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sampling representa un muestreo de crecimiento sobre un ciclo: tamaño de
// muestra, peso corporal promedio y mortalidad observada desde el muestreo
// anterior. Si MortalityCount > 0 el registro origina un movimiento
// mortality en el libro de existencias que lo referencia.
type Sampling struct {
	ID           string
	PondID       string
	CycleID      string
	SamplingDate time.Time
	SampleSize   int
	// AvgWeightGram peso corporal promedio de la muestra, en gramos.
	AvgWeightGram  decimal.Decimal
	MortalityCount int64
	Note           string
	CreatedBy      string
	CreatedAt      time.Time
}

// Biomass estima la biomasa del ciclo en kilogramos a partir del saldo de
// población vigente y el peso promedio del muestreo.
func (s *Sampling) Biomass(balance int64) decimal.Decimal {
	return s.AvgWeightGram.Mul(decimal.NewFromInt(balance)).Div(decimal.NewFromInt(1000))
}
