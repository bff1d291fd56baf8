package movement_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos: los repos comparten los mismos mapas y el
// memTxRunner serializa las transacciones con un mutex (el equivalente del lock
// de fila) y restaura un snapshot si la función devuelve error (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	materials map[string]*entity.Material
	movements map[string]*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		materials: make(map[string]*entity.Material),
		movements: make(map[string]*entity.Movement),
	}
}

func (s *memStore) snapshot() (map[string]*entity.Material, map[string]*entity.Movement) {
	mats := make(map[string]*entity.Material, len(s.materials))
	for k, v := range s.materials {
		cp := *v
		mats[k] = &cp
	}
	movs := make(map[string]*entity.Movement, len(s.movements))
	for k, v := range s.movements {
		cp := *v
		movs[k] = &cp
	}
	return mats, movs
}

// memTxRunner implementa movement.TxRunner sobre el memStore.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	mats, movs := r.store.snapshot()
	err := fn(&memMovementRepo{store: r.store}, &memMaterialRepo{store: r.store})
	if err != nil {
		// rollback
		r.store.materials = mats
		r.store.movements = movs
		return err
	}
	return nil
}

// ── memMaterialRepo ───────────────────────────────────────────────────────────

type memMaterialRepo struct {
	store *memStore
}

func (r *memMaterialRepo) Create(m *entity.Material) error {
	for _, existing := range r.store.materials {
		if existing.Code == m.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *m
	r.store.materials[m.ID] = &cp
	return nil
}

func (r *memMaterialRepo) GetByID(id string) (*entity.Material, error) {
	m, ok := r.store.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMaterialRepo) GetByCode(code string) (*entity.Material, error) {
	for _, m := range r.store.materials {
		if m.Code == code {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *memMaterialRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	m, ok := r.store.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentQuantity = quantity
	m.UpdatedAt = time.Now()
	return nil
}

func (r *memMaterialRepo) Update(m *entity.Material) error {
	cur, ok := r.store.materials[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	qty := cur.CurrentQuantity
	cp := *m
	cp.CurrentQuantity = qty
	r.store.materials[m.ID] = &cp
	return nil
}

func (r *memMaterialRepo) List(search string, limit, offset int) ([]*entity.Material, error) {
	var list []*entity.Material
	for _, m := range r.store.materials {
		if search == "" || strings.Contains(m.Code, search) || strings.Contains(m.Name, search) {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *memMaterialRepo) ListCritical(limit int) ([]*entity.Material, error) {
	var list []*entity.Material
	for _, m := range r.store.materials {
		if m.IsCritical() {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		di := list[i].MinQuantity.Sub(list[i].CurrentQuantity)
		dj := list[j].MinQuantity.Sub(list[j].CurrentQuantity)
		return di.GreaterThan(dj)
	})
	return page(list, limit, 0), nil
}

func (r *memMaterialRepo) Delete(id string) error {
	for _, mov := range r.store.movements {
		if mov.MaterialID == id {
			return domain.ErrConflict
		}
	}
	delete(r.store.materials, id)
	return nil
}

// ── memMovementRepo ───────────────────────────────────────────────────────────

type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.store.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovementRepo) GetForUpdate(id string) (*entity.Movement, error) {
	return r.GetByID(id)
}

func (r *memMovementRepo) UpdateDecision(id, status, approvedBy string, approvedAt time.Time, before, after decimal.Decimal) error {
	m, ok := r.store.movements[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Status = status
	m.ApprovedBy = approvedBy
	m.ApprovedAt = &approvedAt
	m.QuantityBefore = before
	m.QuantityAfter = after
	return nil
}

func (r *memMovementRepo) AttachSignature(id, signature string) error {
	m, ok := r.store.movements[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.WithdrawalSignature = signature
	return nil
}

func (r *memMovementRepo) ListByStatus(status string, limit, offset int) ([]*entity.Movement, error) {
	list := r.filter(func(m *entity.Movement) bool { return m.Status == status })
	asc := status == entity.MovementStatusPending
	sort.Slice(list, func(i, j int) bool {
		if asc {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return page(list, limit, offset), nil
}

func (r *memMovementRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.Movement, error) {
	list := r.filter(func(m *entity.Movement) bool { return m.MaterialID == materialID })
	sortDesc(list)
	return page(list, limit, offset), nil
}

func (r *memMovementRepo) ListByUser(userID string, limit, offset int) ([]*entity.Movement, error) {
	list := r.filter(func(m *entity.Movement) bool { return m.UserID == userID })
	sortDesc(list)
	return page(list, limit, offset), nil
}

func (r *memMovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	list := r.filter(func(m *entity.Movement) bool {
		if from != nil && m.CreatedAt.Before(*from) {
			return false
		}
		if to != nil && m.CreatedAt.After(*to) {
			return false
		}
		return true
	})
	sortDesc(list)
	return page(list, limit, offset), nil
}

func (r *memMovementRepo) filter(keep func(*entity.Movement) bool) []*entity.Movement {
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if keep(m) {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list
}

func sortDesc(list []*entity.Movement) {
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
