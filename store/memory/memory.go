// Package memory provides an in-memory contract.Store (for testing/dev).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/warp/contract-engine/contract"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	contracts map[string]contract.Contract
	ratings   map[string]contract.Rating // keyed by contract ID
}

func New() *Memory {
	return &Memory{
		contracts: make(map[string]contract.Contract),
		ratings:   make(map[string]contract.Rating),
	}
}

func (m *Memory) Create(_ context.Context, c contract.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contracts[c.ID]; ok {
		return fmt.Errorf("contract %s already exists", c.ID)
	}
	m.contracts[c.ID] = c
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (contract.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.contracts[id]
	if !ok {
		return contract.Contract{}, contract.ErrNotFound
	}
	return c, nil
}

func (m *Memory) Update(_ context.Context, c contract.Contract, expected contract.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.contracts[c.ID]
	if !ok {
		return contract.ErrNotFound
	}
	if stored.Status != expected {
		return contract.ErrStaleWrite
	}
	m.contracts[c.ID] = c
	return nil
}

func (m *Memory) ListByWorker(_ context.Context, workerID string) ([]contract.Contract, error) {
	return m.list(func(c contract.Contract) bool {
		return c.WorkerID == workerID && c.VisibleTo(contract.PartyWorker)
	}), nil
}

func (m *Memory) ListByEmployer(_ context.Context, employerID string) ([]contract.Contract, error) {
	return m.list(func(c contract.Contract) bool {
		return c.EmployerID == employerID && c.VisibleTo(contract.PartyEmployer)
	}), nil
}

func (m *Memory) list(keep func(contract.Contract) bool) []contract.Contract {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []contract.Contract
	for _, c := range m.contracts {
		if keep(c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (m *Memory) SaveRating(_ context.Context, r contract.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contracts[r.ContractID]; !ok {
		return contract.ErrNotFound
	}
	m.ratings[r.ContractID] = r
	return nil
}

func (m *Memory) RatingsForWorker(_ context.Context, workerID string) ([]contract.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []contract.Rating
	for _, r := range m.ratings {
		if r.WorkerID == workerID {
			result = append(result, r)
		}
	}
	return result, nil
}

// Reset clears all data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contracts = make(map[string]contract.Contract)
	m.ratings = make(map[string]contract.Rating)
	return nil
}

var _ contract.Store = (*Memory)(nil)
