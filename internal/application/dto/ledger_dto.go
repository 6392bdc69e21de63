package dto

import "time"

// RegisterMovementRequest body para POST /api/ledger/movements (endpoint de
// ajuste manual de stock). Kind admite adjustment, transfer_out y
// transfer_in; quantity es positiva salvo en adjustment, que lleva signo.
type RegisterMovementRequest struct {
	PondID          string    `json:"pond_id"`
	CycleID         string    `json:"cycle_id"`
	Kind            string    `json:"kind"`
	Quantity        int64     `json:"quantity"`
	EventDate       time.Time `json:"event_date"`
	TransferGroupID string    `json:"transfer_group_id,omitempty"`
	Note            string    `json:"note,omitempty"`
}

// TransferRequest body para POST /api/ledger/transfers: traslado de
// población entre dos (estanque, ciclo) escrito en una sola transacción.
type TransferRequest struct {
	FromPondID  string    `json:"from_pond_id"`
	FromCycleID string    `json:"from_cycle_id"`
	ToPondID    string    `json:"to_pond_id"`
	ToCycleID   string    `json:"to_cycle_id"`
	Quantity    int64     `json:"quantity"`
	EventDate   time.Time `json:"event_date"`
	Note        string    `json:"note,omitempty"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID        string    `json:"id"`
	PondID    string    `json:"pond_id"`
	CycleID   string    `json:"cycle_id"`
	Kind      string    `json:"kind"`
	Quantity  int64     `json:"quantity"`
	Balance   int64     `json:"balance"`
	EventDate time.Time `json:"event_date"`
	RefTable  string    `json:"ref_table,omitempty"`
	RefID     string    `json:"ref_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BalanceResponse saldo vigente de un (estanque, ciclo).
type BalanceResponse struct {
	PondID  string `json:"pond_id"`
	CycleID string `json:"cycle_id"`
	Balance int64  `json:"balance"`
}
