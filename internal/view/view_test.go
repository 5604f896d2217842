package view

import (
	"context"
	"testing"

	"github.com/iwvelando/trident/internal/session"
	"github.com/iwvelando/trident/internal/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseView(t *testing.T) {
	for _, v := range All() {
		parsed, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)

		parsed, err = ParseView(v.Label())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	parsed, err := ParseView("  DEAL PIPELINE (crm) ")
	require.NoError(t, err)
	assert.Equal(t, DealPipeline, parsed)

	_, err = ParseView("settings")
	assert.Error(t, err)
}

func TestStaticProvider(t *testing.T) {
	provider, err := NewStaticProvider([]SeriesConfig{
		{Name: "Rentals", Start: "2025-11", Values: []float64{100, 101, 103}},
		{Name: "Flips", Start: "2025-11", Values: []float64{100, 98}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rentals", "Flips"}, provider.Names())

	s, err := provider.Series(context.Background(), "Rentals")
	require.NoError(t, err)
	require.Len(t, s.Points, 3)
	assert.Equal(t, Point{Month: "2026-01", Value: 103}, s.Points[2])

	s.Points[0].Value = -1
	again, err := provider.Series(context.Background(), "Rentals")
	require.NoError(t, err)
	assert.Equal(t, 100.0, again.Points[0].Value)

	_, err = provider.Series(context.Background(), "Wholesale")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = provider.Series(ctx, "Rentals")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticProviderRejectsBadConfig(t *testing.T) {
	_, err := NewStaticProvider([]SeriesConfig{{Name: "Rentals", Start: "last year", Values: []float64{1}}})
	assert.Error(t, err)

	_, err = NewStaticProvider([]SeriesConfig{
		{Name: "Rentals", Start: "2025-01"},
		{Name: "Rentals", Start: "2025-01"},
	})
	assert.Error(t, err)
}

func newTestBuilder(t *testing.T) (*Builder, *session.Store) {
	t.Helper()

	store := session.NewStore(zap.NewNop())
	_, err := store.Initialize(850000, session.DefaultLeads())
	require.NoError(t, err)

	engine, err := valuation.NewEngine(zap.NewNop(), valuation.DefaultParameters())
	require.NoError(t, err)

	provider, err := NewStaticProvider([]SeriesConfig{{Name: "Rentals", Start: "2025-01", Values: []float64{1, 2}}})
	require.NoError(t, err)

	opts := Options{
		Metrics:     []Metric{{Label: "Total Equity", Value: "$1.2M", Delta: "+8%"}},
		Markets:     []Market{{Name: "Miami (HQ)", Latitude: 25.7617, Longitude: -80.1918, Value: 1200000}},
		SeriesNames: provider.Names(),
		Calculator: CalculatorInput{
			Deal: valuation.DealInput{PurchasePrice: 400000, ARV: 600000, RehabCost: 50000, MonthlyRent: 3500},
		},
	}
	return NewBuilder(zap.NewNop(), store, engine, provider, opts), store
}

func TestBuildEveryView(t *testing.T) {
	builder, _ := newTestBuilder(t)

	for _, v := range All() {
		t.Run(v.String(), func(t *testing.T) {
			snap, err := builder.Build(context.Background(), v)
			require.NoError(t, err)
			assert.Equal(t, v, snap.View)
			assert.Equal(t, v.Title(), snap.Title)
		})
	}

	_, err := builder.Build(context.Background(), View(99))
	assert.Error(t, err)
}

func TestBuildDashboard(t *testing.T) {
	builder, store := newTestBuilder(t)
	store.SetCapital(500000)

	snap, err := builder.Build(context.Background(), Dashboard)
	require.NoError(t, err)
	require.Len(t, snap.Metrics, 3)
	assert.Equal(t, Metric{Label: "Active Deals", Value: "4", Delta: "4 markets"}, snap.Metrics[1])
	assert.Equal(t, "$500,000", snap.Metrics[2].Value)
	require.Len(t, snap.Series, 1)
	assert.Equal(t, "Rentals", snap.Series[0].Name)
}

func TestBuildPipelineIsACopy(t *testing.T) {
	builder, store := newTestBuilder(t)

	snap, err := builder.Build(context.Background(), DealPipeline)
	require.NoError(t, err)
	require.NotEmpty(t, snap.Leads)

	snap.Leads[0].Address = "changed"
	assert.NotEqual(t, "changed", store.Leads()[0].Address)
}

func TestBuildCalculator(t *testing.T) {
	builder, _ := newTestBuilder(t)

	snap, err := builder.Build(context.Background(), DealCalculator)
	require.NoError(t, err)
	require.NotNil(t, snap.Input)
	require.Len(t, snap.Analyses, len(valuation.Strategies()))

	flip := snap.Analyses[0].Flip
	require.NotNil(t, flip)
	assert.InDelta(t, 90000, flip.Profit, 0.01)
	assert.Equal(t, valuation.Approved, flip.Recommendation)

	_, err = builder.Calculate(CalculatorInput{Deal: valuation.DealInput{ARV: -1}})
	assert.ErrorIs(t, err, valuation.ErrInvalidInput)
}
