package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seed is what every new session starts with.
type Seed struct {
	Capital float64
	Leads   []Lead
}

// Manager owns the stores of open sessions. A store lives from Open until
// Close; nothing survives Close.
type Manager struct {
	mu       sync.Mutex
	logger   *zap.Logger
	seed     Seed
	sessions map[uuid.UUID]*Store
}

// NewManager validates the seed once so Open cannot fail on it later.
func NewManager(logger *zap.Logger, seed Seed) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ValidateLeads(seed.Leads); err != nil {
		return nil, fmt.Errorf("invalid seed leads: %w", err)
	}
	return &Manager{
		logger:   logger,
		seed:     Seed{Capital: seed.Capital, Leads: copyLeads(seed.Leads)},
		sessions: make(map[uuid.UUID]*Store),
	}, nil
}

// Open creates and seeds a new session.
func (m *Manager) Open() (uuid.UUID, *Store, error) {
	id := uuid.New()
	store := NewStore(m.logger.With(zap.String("session", id.String())))
	if _, err := store.Initialize(m.seed.Capital, m.seed.Leads); err != nil {
		return uuid.Nil, nil, err
	}

	m.mu.Lock()
	m.sessions[id] = store
	m.mu.Unlock()

	m.logger.Info("session opened",
		zap.String("op", "session.Open"),
		zap.String("session", id.String()),
	)
	return id, store, nil
}

// Get returns the store of an open session.
func (m *Manager) Get(id uuid.UUID) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.sessions[id]
	return store, ok
}

// Close discards a session's state. Closing an unknown session is a no-op.
func (m *Manager) Close(id uuid.UUID) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		m.logger.Info("session closed",
			zap.String("op", "session.Close"),
			zap.String("session", id.String()),
		)
	}
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
