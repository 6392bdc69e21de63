package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.CycleRepository         = (*CycleRepo)(nil)
	_ repository.PondRepository          = (*PondRepo)(nil)
	_ repository.FarmRepository          = (*FarmRepo)(nil)
	_ repository.SamplingRepository      = (*SamplingRepo)(nil)
	_ repository.HarvestRepository       = (*HarvestRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
)

// StockMovementRepo libro de existencias en memoria. Con tx != nil opera
// dentro de una transacción abierta por el TxRunner (mutex ya tomado);
// sin tx es un adaptador de lectura/escritura directa sobre el store.
type StockMovementRepo struct {
	s  *Store
	tx *storeTx
}

// NewStockMovementRepository adaptador directo (fuera de transacción).
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if r.tx != nil {
		r.tx.movements = append(r.tx.movements, *m)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *StockMovementRepo) GetLast(pondID, cycleID string) (*entity.StockMovement, error) {
	if r.tx != nil {
		return lastMovement(r.s.movements, r.tx.movements, pondID, cycleID), nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return lastMovement(r.s.movements, nil, pondID, cycleID), nil
}

func (r *StockMovementRepo) ListByCycle(cycleID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	match := func(m entity.StockMovement) bool { return m.CycleID == cycleID }
	return r.listMatching(match, from, to, limit, offset), nil
}

func (r *StockMovementRepo) ListByPond(pondID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	match := func(m entity.StockMovement) bool { return m.PondID == pondID }
	return r.listMatching(match, from, to, limit, offset), nil
}

func (r *StockMovementRepo) listMatching(match func(entity.StockMovement) bool, from, to *time.Time, limit, offset int) []*entity.StockMovement {
	if r.tx != nil {
		all := append(append([]entity.StockMovement{}, r.s.movements...), r.tx.movements...)
		return filterMovements(all, match, from, to, limit, offset)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return filterMovements(r.s.movements, match, from, to, limit, offset)
}

// CycleRepo ciclos en memoria, con el equivalente del índice único parcial
// "un ciclo growing por estanque" aplicado en Create.
type CycleRepo struct {
	s  *Store
	tx *storeTx
}

// NewCycleRepository adaptador directo (fuera de transacción).
func NewCycleRepository(s *Store) *CycleRepo {
	return &CycleRepo{s: s}
}

func (r *CycleRepo) Create(c *entity.Cycle) error {
	if r.tx != nil {
		if c.Status == entity.CycleStatusGrowing && r.tx.growingCycleExists(c.PondID) {
			return domain.ErrCycleAlreadyActive
		}
		r.tx.putCycle(*c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.Status == entity.CycleStatusGrowing {
		for _, existing := range r.s.cycles {
			if existing.PondID == c.PondID && existing.Status == entity.CycleStatusGrowing {
				return domain.ErrCycleAlreadyActive
			}
		}
	}
	r.s.cycles[c.ID] = *c
	return nil
}

func (r *CycleRepo) GetByID(id string) (*entity.Cycle, error) {
	if r.tx != nil {
		return r.tx.getCycle(id), nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.cycles[id]; ok {
		return copyCycle(c), nil
	}
	return nil, nil
}

// GetForUpdate en memoria no necesita bloquear fila: el TxRunner ya
// serializó la transacción completa con el mutex del store.
func (r *CycleRepo) GetForUpdate(id string) (*entity.Cycle, error) {
	return r.GetByID(id)
}

func (r *CycleRepo) GetActiveByPond(pondID string) (*entity.Cycle, error) {
	find := func(m map[string]entity.Cycle, overrides map[string]entity.Cycle) *entity.Cycle {
		for id, c := range m {
			if overrides != nil {
				if o, ok := overrides[id]; ok {
					c = o
				}
			}
			if c.PondID == pondID && c.Status == entity.CycleStatusGrowing {
				return copyCycle(c)
			}
		}
		return nil
	}
	if r.tx != nil {
		if c := find(r.s.cycles, r.tx.cycles); c != nil {
			return c, nil
		}
		return find(r.tx.cycles, nil), nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return find(r.s.cycles, nil), nil
}

func (r *CycleRepo) SetOpeningMovement(cycleID, movementID string) error {
	return r.update(cycleID, func(c *entity.Cycle) {
		c.OpeningMovementID = movementID
		c.UpdatedAt = time.Now()
	})
}

func (r *CycleRepo) UpdateStatus(cycleID, status string) error {
	return r.update(cycleID, func(c *entity.Cycle) {
		c.Status = status
		c.UpdatedAt = time.Now()
	})
}

func (r *CycleRepo) update(cycleID string, mutate func(*entity.Cycle)) error {
	if r.tx != nil {
		c := r.tx.getCycle(cycleID)
		if c == nil {
			return domain.ErrNotFound
		}
		mutate(c)
		r.tx.putCycle(*c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cycles[cycleID]
	if !ok {
		return domain.ErrNotFound
	}
	mutate(&c)
	r.s.cycles[cycleID] = c
	return nil
}

func (r *CycleRepo) ListByPond(pondID string, limit, offset int) ([]*entity.Cycle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Cycle
	for _, c := range r.s.cycles {
		if c.PondID == pondID {
			list = append(list, copyCycle(c))
		}
	}
	// Mismo orden que el adaptador SQL: stocking_date descendente. El
	// recorrido del map no tiene orden, así que hay que fijarlo antes de
	// cortar la página.
	sort.Slice(list, func(i, j int) bool {
		if !list[i].StockingDate.Equal(list[j].StockingDate) {
			return list[i].StockingDate.After(list[j].StockingDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginateCycles(list, limit, offset), nil
}

func paginateCycles(list []*entity.Cycle, limit, offset int) []*entity.Cycle {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// PondRepo estanques en memoria.
type PondRepo struct {
	s *Store
}

// NewPondRepository construye el adaptador.
func NewPondRepository(s *Store) *PondRepo {
	return &PondRepo{s: s}
}

func (r *PondRepo) Create(p *entity.Pond) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ponds[p.ID] = *p
	return nil
}

func (r *PondRepo) GetByID(id string) (*entity.Pond, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.ponds[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *PondRepo) ListByFarm(farmID string, limit, offset int) ([]*entity.Pond, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Pond
	for _, p := range r.s.ponds {
		if p.FarmID == farmID {
			cp := p
			list = append(list, &cp)
		}
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *PondRepo) Update(p *entity.Pond) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ponds[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.ponds[p.ID] = *p
	return nil
}

// FarmRepo granjas en memoria.
type FarmRepo struct {
	s *Store
}

// NewFarmRepository construye el adaptador.
func NewFarmRepository(s *Store) *FarmRepo {
	return &FarmRepo{s: s}
}

func (r *FarmRepo) Create(f *entity.Farm) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.farms[f.ID] = *f
	return nil
}

func (r *FarmRepo) GetByID(id string) (*entity.Farm, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.farms[id]; ok {
		cp := f
		return &cp, nil
	}
	return nil, nil
}

func (r *FarmRepo) List(limit, offset int) ([]*entity.Farm, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Farm
	for _, f := range r.s.farms {
		cp := f
		list = append(list, &cp)
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// SamplingRepo muestreos en memoria.
type SamplingRepo struct {
	s  *Store
	tx *storeTx
}

// NewSamplingRepository adaptador directo (fuera de transacción).
func NewSamplingRepository(s *Store) *SamplingRepo {
	return &SamplingRepo{s: s}
}

func (r *SamplingRepo) Create(smp *entity.Sampling) error {
	if r.tx != nil {
		r.tx.samplings = append(r.tx.samplings, *smp)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.samplings[smp.ID] = *smp
	return nil
}

func (r *SamplingRepo) GetByID(id string) (*entity.Sampling, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if smp, ok := r.s.samplings[id]; ok {
		cp := smp
		return &cp, nil
	}
	return nil, nil
}

func (r *SamplingRepo) ListByCycle(cycleID string, limit, offset int) ([]*entity.Sampling, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Sampling
	for _, smp := range r.s.samplings {
		if smp.CycleID == cycleID {
			cp := smp
			list = append(list, &cp)
		}
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// HarvestRepo cosechas en memoria.
type HarvestRepo struct {
	s  *Store
	tx *storeTx
}

// NewHarvestRepository adaptador directo (fuera de transacción).
func NewHarvestRepository(s *Store) *HarvestRepo {
	return &HarvestRepo{s: s}
}

func (r *HarvestRepo) Create(h *entity.Harvest) error {
	if r.tx != nil {
		r.tx.harvests = append(r.tx.harvests, *h)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.harvests[h.ID] = *h
	return nil
}

func (r *HarvestRepo) GetByID(id string) (*entity.Harvest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if h, ok := r.s.harvests[id]; ok {
		cp := h
		return &cp, nil
	}
	return nil, nil
}

func (r *HarvestRepo) ListByCycle(cycleID string, limit, offset int) ([]*entity.Harvest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Harvest
	for _, h := range r.s.harvests {
		if h.CycleID == cycleID {
			cp := h
			list = append(list, &cp)
		}
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email && existing.FarmID == u.FarmID {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmailAndFarm(email, farmID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email && u.FarmID == farmID {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}
