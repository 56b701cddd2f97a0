package ledger

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=ledger
type Store interface {
	// Load reads the persisted dataset, initializing an empty one if absent.
	Load(ctx context.Context) (Ledger, error)
	// Save overwrites the persisted dataset with the given snapshot.
	Save(ctx context.Context, l Ledger) error
}

// Service ties the pure mutation functions to the record store: every mutation
// is persisted before the new snapshot is handed back, so a returned ledger is
// always durable.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load returns the current persisted ledger.
func (s *Service) Load(ctx context.Context) (Ledger, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	return l, nil
}

// Add appends a new transaction and persists the resulting snapshot.
func (s *Service) Add(ctx context.Context, l Ledger, params CreateParams) (Ledger, error) {
	next := Add(l, params)

	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("saving ledger: %w", err)
	}

	return next, nil
}

// Update applies a partial update and persists the resulting snapshot.
func (s *Service) Update(ctx context.Context, l Ledger, id int64, params UpdateParams) (Ledger, error) {
	next, err := Update(l, id, params)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("saving ledger: %w", err)
	}

	return next, nil
}

// Delete removes a transaction and persists the resulting snapshot.
func (s *Service) Delete(ctx context.Context, l Ledger, id int64) (Ledger, error) {
	next, err := Delete(l, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("saving ledger: %w", err)
	}

	return next, nil
}
