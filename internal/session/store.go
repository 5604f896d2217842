package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store is the mutable state of a single session. Reads return copies so a
// display snapshot never aliases the live state.
type Store struct {
	mu          sync.RWMutex
	logger      *zap.Logger
	initialized bool
	capitalSet  bool
	leadsSet    bool
	capital     float64
	leads       []Lead
}

// NewStore returns an uninitialized store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Initialize seeds capital and leads. Only the first call has any effect, and
// a value already written through SetCapital or a lead edit is kept. It reports
// whether anything was seeded. An invalid seed is rejected and leaves the store
// uninitialized.
func (s *Store) Initialize(capital float64, seed []Lead) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		s.logger.Debug("session already initialized",
			zap.String("op", "session.Initialize"),
		)
		return false, nil
	}
	if err := ValidateLeads(seed); err != nil {
		return false, fmt.Errorf("invalid seed leads: %w", err)
	}

	seeded := false
	if !s.capitalSet {
		s.capital = capital
		s.capitalSet = true
		seeded = true
	}
	if !s.leadsSet {
		s.leads = copyLeads(seed)
		s.leadsSet = true
		seeded = true
	}
	s.initialized = true

	s.logger.Debug(fmt.Sprintf("session initialized with %d leads", len(s.leads)),
		zap.String("op", "session.Initialize"),
		zap.Float64("capital", s.capital),
		zap.Bool("seeded", seeded),
	)
	return seeded, nil
}

// Initialized reports whether Initialize has seeded the store.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Leads returns a copy of the current leads.
func (s *Store) Leads() []Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyLeads(s.leads)
}

// ReplaceLeads swaps in a new lead table. Either every row is valid and the
// whole table is replaced, or nothing changes and a *ValidationError is returned.
func (s *Store) ReplaceLeads(leads []Lead) error {
	if err := ValidateLeads(leads); err != nil {
		s.logger.Warn("rejected lead replacement",
			zap.String("op", "session.ReplaceLeads"),
			zap.Error(err),
		)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = copyLeads(leads)
	s.leadsSet = true
	return nil
}

// AddLead appends a lead.
func (s *Store) AddLead(lead Lead) error {
	return s.modify(func(leads []Lead) ([]Lead, error) {
		return append(leads, lead), nil
	})
}

// UpdateLead overwrites the lead at index.
func (s *Store) UpdateLead(index int, lead Lead) error {
	return s.modify(func(leads []Lead) ([]Lead, error) {
		if index < 0 || index >= len(leads) {
			return nil, fmt.Errorf("lead index %d out of range [0, %d)", index, len(leads))
		}
		leads[index] = lead
		return leads, nil
	})
}

// RemoveLead deletes the lead at index.
func (s *Store) RemoveLead(index int) error {
	return s.modify(func(leads []Lead) ([]Lead, error) {
		if index < 0 || index >= len(leads) {
			return nil, fmt.Errorf("lead index %d out of range [0, %d)", index, len(leads))
		}
		return append(leads[:index], leads[index+1:]...), nil
	})
}

// modify applies fn to a copy of the leads under the write lock and commits
// the result only if it validates.
func (s *Store) modify(fn func([]Lead) ([]Lead, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(copyLeads(s.leads))
	if err != nil {
		return err
	}
	if err := ValidateLeads(next); err != nil {
		return err
	}
	s.leads = next
	s.leadsSet = true
	return nil
}

// Capital returns the session's liquid capital.
func (s *Store) Capital() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capital
}

// SetCapital overwrites the session's liquid capital.
func (s *Store) SetCapital(capital float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capital = capital
	s.capitalSet = true
}

func copyLeads(leads []Lead) []Lead {
	if leads == nil {
		return nil
	}
	out := make([]Lead, len(leads))
	copy(out, leads)
	return out
}
