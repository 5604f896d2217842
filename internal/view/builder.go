package view

import (
	"context"
	"fmt"

	"github.com/iwvelando/trident/internal/session"
	"github.com/iwvelando/trident/internal/valuation"
	"github.com/iwvelando/trident/pkg/format"
	"go.uber.org/zap"
)

// Metric is one executive summary card.
type Metric struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Delta string `yaml:"delta"`
}

// Market is an asset location on the nationwide map.
type Market struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Value     float64 `yaml:"value"`
}

// CalculatorInput is what the deal calculator evaluates.
type CalculatorInput struct {
	Deal  valuation.DealInput     `yaml:"deal"`
	Terms valuation.CreativeTerms `yaml:"terms"`
}

// Snapshot is everything one page displays. It never aliases session state.
type Snapshot struct {
	View     View
	Title    string
	Metrics  []Metric
	Series   []Series
	Markets  []Market
	Leads    []session.Lead
	Capital  float64
	Input    *CalculatorInput
	Analyses []valuation.Analysis
}

// Options configures a Builder.
type Options struct {
	Metrics     []Metric
	Markets     []Market
	SeriesNames []string
	Calculator  CalculatorInput
}

// Builder renders snapshots for one session.
type Builder struct {
	logger   *zap.Logger
	store    *session.Store
	engine   *valuation.Engine
	provider SeriesProvider
	opts     Options
}

// NewBuilder wires a session store, engine and series source together.
func NewBuilder(logger *zap.Logger, store *session.Store, engine *valuation.Engine, provider SeriesProvider, opts Options) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger, store: store, engine: engine, provider: provider, opts: opts}
}

// Build runs one synchronous evaluation pass for v.
func (b *Builder) Build(ctx context.Context, v View) (Snapshot, error) {
	snap := Snapshot{View: v, Title: v.Title(), Capital: b.store.Capital()}

	switch v {
	case Dashboard:
		snap.Metrics = b.dashboardMetrics()
		series, err := b.series(ctx)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Series = series
	case NationwideMap:
		snap.Markets = append([]Market(nil), b.opts.Markets...)
	case DealPipeline:
		snap.Leads = b.store.Leads()
	case DealCalculator:
		input := b.opts.Calculator
		analyses, err := b.Calculate(input)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Input = &input
		snap.Analyses = analyses
	default:
		return Snapshot{}, fmt.Errorf("no builder for %s", v)
	}

	b.logger.Debug(fmt.Sprintf("built %s view", v),
		zap.String("op", "view.Build"),
	)
	return snap, nil
}

// Calculate runs every strategy against input.
func (b *Builder) Calculate(input CalculatorInput) ([]valuation.Analysis, error) {
	strategies := valuation.Strategies()
	analyses := make([]valuation.Analysis, 0, len(strategies))
	for _, s := range strategies {
		a, err := b.engine.Analyze(s, input.Deal, input.Terms)
		if err != nil {
			return nil, fmt.Errorf("%s analysis: %w", s, err)
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}

// dashboardMetrics appends the session-derived cards to the configured ones.
func (b *Builder) dashboardMetrics() []Metric {
	metrics := append([]Metric(nil), b.opts.Metrics...)

	active := 0
	markets := make(map[string]struct{})
	for _, lead := range b.store.Leads() {
		if lead.Status.Active() {
			active++
			if lead.Market != "" {
				markets[lead.Market] = struct{}{}
			}
		}
	}

	delta := "Nationwide"
	if len(markets) == 1 {
		delta = "1 market"
	} else if len(markets) > 1 {
		delta = fmt.Sprintf("%d markets", len(markets))
	}

	return append(metrics,
		Metric{Label: "Active Deals", Value: fmt.Sprintf("%d", active), Delta: delta},
		Metric{Label: "Liquid Capital", Value: format.WholeCurrency(b.store.Capital()), Delta: "Ready"},
	)
}

func (b *Builder) series(ctx context.Context) ([]Series, error) {
	if b.provider == nil {
		return nil, nil
	}
	out := make([]Series, 0, len(b.opts.SeriesNames))
	for _, name := range b.opts.SeriesNames {
		s, err := b.provider.Series(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", name, err)
		}
		out = append(out, s)
	}
	return out, nil
}
