package entity

import "time"

// Tipos de evento del libro de existencias (value object conceptual).
// El signo del delta queda fijado por el tipo; solo adjustment admite ambos.
const (
	EventSeeding     = "seeding"      // siembra: apertura de ciclo, delta positivo
	EventMortality   = "mortality"    // mortalidad registrada en muestreo, delta negativo
	EventHarvest     = "harvest"      // cosecha parcial o total, delta negativo
	EventAdjustment  = "adjustment"   // corrección manual de conteo, delta con signo
	EventTransferOut = "transfer_out" // pata de salida de un traslado entre estanques
	EventTransferIn  = "transfer_in"  // pata de entrada del mismo traslado
)

// Tablas de referencia admitidas en StockMovement.RefTable.
const (
	RefTableCycles    = "cycles"
	RefTableSamplings = "samplings"
	RefTableHarvests  = "harvests"
	RefTableTransfers = "transfers"
)

// StockMovement es una entrada inmutable del libro de existencias de un
// (estanque, ciclo): delta firmado de población y saldo resultante tras
// aplicarlo. Solo se inserta, nunca se actualiza ni se borra.
//
// Invariante: ordenados por (EventDate, CreatedAt) los movimientos de un
// mismo (PondID, CycleID) forman una suma de prefijos cuyo total corre en
// Balance y nunca es negativo.
type StockMovement struct {
	ID       string
	PondID   string
	CycleID  string
	Kind     string // seeding, mortality, harvest, adjustment, transfer_out, transfer_in
	Quantity int64  // delta firmado de animales vivos
	Balance  int64  // saldo del ciclo después de aplicar Quantity
	// EventDate fecha de negocio del evento; distinta de CreatedAt,
	// que es el instante de inserción del registro.
	EventDate time.Time
	RefTable  string // tabla del registro origen (samplings, harvests, ...) o vacío
	RefID     string // id del registro origen o correlación de traslado
	Note      string
	CreatedBy string // UserID
	CreatedAt time.Time
}
