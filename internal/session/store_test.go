package session

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(zap.NewNop())
	seeded, err := store.Initialize(850000, DefaultLeads())
	require.NoError(t, err)
	require.True(t, seeded)
	return store
}

func TestInitializeIsIdempotent(t *testing.T) {
	store := newSeededStore(t)
	before := store.Leads()

	seeded, err := store.Initialize(1, []Lead{{Address: "1 Other St"}})
	require.NoError(t, err)
	assert.False(t, seeded)

	assert.Equal(t, 850000.0, store.Capital())
	assert.Equal(t, before, store.Leads())
	assert.Len(t, store.Leads(), len(DefaultLeads()))
}

func TestInitializeRejectsInvalidSeed(t *testing.T) {
	store := NewStore(nil)
	_, err := store.Initialize(10, []Lead{{Address: "1 Main St", OfferPrice: -5}})
	require.ErrorIs(t, err, ErrValidation)
	assert.False(t, store.Initialized())

	seeded, err := store.Initialize(10, DefaultLeads())
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestInitializeKeepsEditsMadeBeforeIt(t *testing.T) {
	store := NewStore(zap.NewNop())
	store.SetCapital(1)
	require.NoError(t, store.ReplaceLeads([]Lead{{Address: "user edit"}}))

	seeded, err := store.Initialize(850000, DefaultLeads())
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.True(t, store.Initialized())
	assert.Equal(t, 1.0, store.Capital())
	require.Len(t, store.Leads(), 1)
	assert.Equal(t, "user edit", store.Leads()[0].Address)
}

func TestInitializeSeedsOnlyMissingValues(t *testing.T) {
	store := NewStore(zap.NewNop())
	require.NoError(t, store.AddLead(Lead{Address: "5 First St", OfferPrice: 1000}))

	seeded, err := store.Initialize(850000, DefaultLeads())
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, 850000.0, store.Capital())
	require.Len(t, store.Leads(), 1)
	assert.Equal(t, "5 First St", store.Leads()[0].Address)
}

func TestReplaceLeadsIsAtomic(t *testing.T) {
	store := newSeededStore(t)
	before := store.Leads()

	replacement := []Lead{
		{Address: "1 Good St", Status: StatusNewLead, OfferPrice: 100000},
		{Address: "2 Bad St", Status: StatusNewLead, OfferPrice: -1},
	}
	err := store.ReplaceLeads(replacement)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 1, validationErr.Row)
	assert.Equal(t, "offerPrice", validationErr.Field)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, store.Leads())
}

func TestReplaceLeads(t *testing.T) {
	store := newSeededStore(t)

	replacement := []Lead{{Address: "9 Harbor Way", Source: "Referral", Status: StatusClosed, OfferPrice: 0}}
	require.NoError(t, store.ReplaceLeads(replacement))
	assert.Equal(t, replacement, store.Leads())

	require.NoError(t, store.ReplaceLeads(nil))
	assert.Empty(t, store.Leads())
}

func TestValidateLeads(t *testing.T) {
	tests := []struct {
		name  string
		leads []Lead
		row   int
		field string
	}{
		{"Missing address", []Lead{{Address: "   "}}, 0, "address"},
		{"Duplicate address", []Lead{{Address: "12 Ocean Dr"}, {Address: " 12  ocean DR "}}, 1, "address"},
		{"Negative offer", []Lead{{Address: "a"}, {Address: "b"}, {Address: "c", OfferPrice: -0.01}}, 2, "offerPrice"},
		{"NaN offer", []Lead{{Address: "a", OfferPrice: math.NaN()}}, 0, "offerPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLeads(tt.leads)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.row, validationErr.Row)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	assert.NoError(t, ValidateLeads(DefaultLeads()))
}

func TestReadsReturnCopies(t *testing.T) {
	store := newSeededStore(t)

	leads := store.Leads()
	leads[0].OfferPrice = 1
	assert.NotEqual(t, 1.0, store.Leads()[0].OfferPrice)
}

func TestLeadEdits(t *testing.T) {
	store := newSeededStore(t)
	n := len(store.Leads())

	require.NoError(t, store.AddLead(Lead{Address: "7 Canal St", Status: StatusNewLead, OfferPrice: 99000}))
	assert.Len(t, store.Leads(), n+1)

	assert.ErrorIs(t, store.AddLead(Lead{Address: "7 canal st"}), ErrValidation)
	assert.Len(t, store.Leads(), n+1)

	updated := store.Leads()[0]
	updated.Status = StatusClosed
	require.NoError(t, store.UpdateLead(0, updated))
	assert.Equal(t, StatusClosed, store.Leads()[0].Status)

	updated.OfferPrice = -10
	assert.ErrorIs(t, store.UpdateLead(0, updated), ErrValidation)
	assert.Error(t, store.UpdateLead(99, updated))

	require.NoError(t, store.RemoveLead(n))
	assert.Len(t, store.Leads(), n)
	assert.Error(t, store.RemoveLead(-1))
}

func TestCapital(t *testing.T) {
	store := newSeededStore(t)
	store.SetCapital(125000)
	assert.Equal(t, 125000.0, store.Capital())
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" under contract ")
	require.NoError(t, err)
	assert.Equal(t, StatusUnderContract, status)
	assert.True(t, status.Active())
	assert.False(t, StatusClosed.Active())

	_, err = ParseStatus("Abandoned")
	assert.Error(t, err)
}

func TestManagerLifecycle(t *testing.T) {
	manager, err := NewManager(zap.NewNop(), Seed{Capital: 850000, Leads: DefaultLeads()})
	require.NoError(t, err)

	id, store, err := manager.Open()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, 1, manager.Len())

	got, ok := manager.Get(id)
	require.True(t, ok)
	assert.Same(t, store, got)

	// Sessions do not share state.
	otherID, other, err := manager.Open()
	require.NoError(t, err)
	store.SetCapital(1)
	assert.Equal(t, 850000.0, other.Capital())

	manager.Close(id)
	_, ok = manager.Get(id)
	assert.False(t, ok)
	manager.Close(id)
	assert.Equal(t, 1, manager.Len())

	manager.Close(otherID)
	assert.Equal(t, 0, manager.Len())
}

func TestNewManagerRejectsInvalidSeed(t *testing.T) {
	_, err := NewManager(nil, Seed{Leads: []Lead{{Address: ""}}})
	assert.ErrorIs(t, err, ErrValidation)
}
