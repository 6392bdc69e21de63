package entity

import "time"

// Farm representa una granja acuícola (tenant). Usuarios, estanques y
// ciclos pertenecen a una Farm.
type Farm struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
