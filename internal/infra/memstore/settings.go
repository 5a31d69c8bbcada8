package memstore

import (
	"context"
	"sync"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/usecase/shared"
)

// SettingsStore holds an immutable *reservation.Settings snapshot. Readers get the
// pointer; writers swap it.
type SettingsStore struct {
	mu       sync.RWMutex
	settings *reservation.Settings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

var _ shared.SettingsStore = (*SettingsStore)(nil)

func (s *SettingsStore) Get(ctx context.Context) (*reservation.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation settings not found")
	}
	return s.settings, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings *reservation.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

func (s *SettingsStore) SaveIfAbsent(ctx context.Context, settings *reservation.Settings) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings != nil {
		return false, nil
	}
	s.settings = settings
	return true, nil
}
