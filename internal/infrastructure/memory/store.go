// Package memory implementa los puertos de persistencia sobre estructuras
// en memoria. Es el backend de los tests del motor del ledger: el TxRunner
// serializa las transacciones con el mutex del store, que garantiza la
// misma propiedad de serialización que el SELECT FOR UPDATE por fila del
// adaptador PostgreSQL; las escrituras quedan en un staging que solo se
// aplica en commit, así un rechazo deja el store intacto.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
)

// Store contenedor en memoria de todas las colecciones.
type Store struct {
	mu        sync.Mutex
	movements []entity.StockMovement
	cycles    map[string]entity.Cycle
	ponds     map[string]entity.Pond
	farms     map[string]entity.Farm
	samplings map[string]entity.Sampling
	harvests  map[string]entity.Harvest
	users     map[string]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		cycles:    make(map[string]entity.Cycle),
		ponds:     make(map[string]entity.Pond),
		farms:     make(map[string]entity.Farm),
		samplings: make(map[string]entity.Sampling),
		harvests:  make(map[string]entity.Harvest),
		users:     make(map[string]entity.User),
	}
}

// storeTx escrituras pendientes de una transacción; se aplican al store
// solo si el callback del TxRunner termina sin error.
type storeTx struct {
	s         *Store
	movements []entity.StockMovement
	cycles    map[string]entity.Cycle
	samplings []entity.Sampling
	harvests  []entity.Harvest
}

func newStoreTx(s *Store) *storeTx {
	return &storeTx{s: s, cycles: make(map[string]entity.Cycle)}
}

func (tx *storeTx) commit() {
	tx.s.movements = append(tx.s.movements, tx.movements...)
	for id, c := range tx.cycles {
		tx.s.cycles[id] = c
	}
	for _, smp := range tx.samplings {
		tx.s.samplings[smp.ID] = smp
	}
	for _, h := range tx.harvests {
		tx.s.harvests[h.ID] = h
	}
}

// lastMovement busca el último movimiento del (estanque, ciclo) en el
// store más el staging, con el mismo orden que el adaptador SQL:
// (event_date, created_at) descendente.
func lastMovement(committed []entity.StockMovement, staged []entity.StockMovement, pondID, cycleID string) *entity.StockMovement {
	var best *entity.StockMovement
	consider := func(m entity.StockMovement) {
		if m.PondID != pondID || m.CycleID != cycleID {
			return
		}
		if best == nil || after(m, *best) {
			cp := m
			best = &cp
		}
	}
	for _, m := range committed {
		consider(m)
	}
	for _, m := range staged {
		consider(m)
	}
	return best
}

// after indica si a va después de b en orden (event_date, created_at);
// en empate total gana el insertado más tarde, que es quien se evalúa después.
func after(a, b entity.StockMovement) bool {
	if !a.EventDate.Equal(b.EventDate) {
		return a.EventDate.After(b.EventDate)
	}
	return !a.CreatedAt.Before(b.CreatedAt)
}

func filterMovements(all []entity.StockMovement, match func(entity.StockMovement) bool, from, to *time.Time, limit, offset int) []*entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range all {
		if !match(m) {
			continue
		}
		if from != nil && m.EventDate.Before(*from) {
			continue
		}
		if to != nil && m.EventDate.After(*to) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return after(out[i], out[j]) })
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	list := make([]*entity.StockMovement, 0, len(out))
	for i := range out {
		cp := out[i]
		list = append(list, &cp)
	}
	return list
}

// growingCycleExists chequea el equivalente del índice único parcial
// "un ciclo growing por estanque" sobre store más staging.
func (tx *storeTx) growingCycleExists(pondID string) bool {
	for _, c := range tx.s.cycles {
		if c.PondID == pondID && c.Status == entity.CycleStatusGrowing {
			if _, overridden := tx.cycles[c.ID]; !overridden {
				return true
			}
			if tx.cycles[c.ID].Status == entity.CycleStatusGrowing {
				return true
			}
		}
	}
	for _, c := range tx.cycles {
		if c.PondID == pondID && c.Status == entity.CycleStatusGrowing {
			if _, committed := tx.s.cycles[c.ID]; !committed {
				return true
			}
		}
	}
	return false
}

func copyCycle(c entity.Cycle) *entity.Cycle { cp := c; return &cp }

func (tx *storeTx) getCycle(id string) *entity.Cycle {
	if c, ok := tx.cycles[id]; ok {
		return copyCycle(c)
	}
	if c, ok := tx.s.cycles[id]; ok {
		return copyCycle(c)
	}
	return nil
}

func (tx *storeTx) putCycle(c entity.Cycle) {
	tx.cycles[c.ID] = c
}
