package view

import (
	"context"
	"fmt"

	"github.com/iwvelando/trident/pkg/datetime"
)

// Point is one month of a chart series.
type Point struct {
	Month string
	Value float64
}

// Series is a named line on a chart.
type Series struct {
	Name   string
	Points []Point
}

// SeriesProvider supplies chart data. Implementations backed by a market
// data feed can replace StaticProvider without touching the views.
type SeriesProvider interface {
	Series(ctx context.Context, name string) (Series, error)
}

// SeriesConfig is a configured line: monthly values from Start onwards.
type SeriesConfig struct {
	Name   string    `yaml:"name"`
	Start  string    `yaml:"start"`
	Values []float64 `yaml:"values"`
}

// StaticProvider serves series from configuration.
type StaticProvider struct {
	series map[string]Series
	names  []string
}

// NewStaticProvider expands each configured line into dated points.
func NewStaticProvider(configs []SeriesConfig) (*StaticProvider, error) {
	p := &StaticProvider{series: make(map[string]Series, len(configs))}
	for _, c := range configs {
		if _, dup := p.series[c.Name]; dup {
			return nil, fmt.Errorf("duplicate series %q", c.Name)
		}
		months, err := datetime.MonthRange(c.Start, len(c.Values))
		if err != nil {
			return nil, fmt.Errorf("series %q: invalid start month %q: %w", c.Name, c.Start, err)
		}
		s := Series{Name: c.Name, Points: make([]Point, len(c.Values))}
		for i, v := range c.Values {
			s.Points[i] = Point{Month: months[i], Value: v}
		}
		p.series[c.Name] = s
		p.names = append(p.names, c.Name)
	}
	return p, nil
}

// Names returns the configured series names in configuration order.
func (p *StaticProvider) Names() []string {
	return append([]string(nil), p.names...)
}

// Series returns a copy of the named series.
func (p *StaticProvider) Series(ctx context.Context, name string) (Series, error) {
	if err := ctx.Err(); err != nil {
		return Series{}, err
	}
	s, ok := p.series[name]
	if !ok {
		return Series{}, fmt.Errorf("unknown series %q", name)
	}
	return Series{Name: s.Name, Points: append([]Point(nil), s.Points...)}, nil
}
