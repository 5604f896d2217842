// Package view defines the pages of the dashboard and builds the display
// snapshot of each from session state and the valuation engine.
package view

import (
	"fmt"
	"strings"
)

// View is one page of the dashboard.
type View int

const (
	Dashboard View = iota
	NationwideMap
	DealPipeline
	DealCalculator
)

// All lists the views in sidebar order.
func All() []View {
	return []View{Dashboard, NationwideMap, DealPipeline, DealCalculator}
}

// String returns the slug used on the command line.
func (v View) String() string {
	switch v {
	case Dashboard:
		return "dashboard"
	case NationwideMap:
		return "map"
	case DealPipeline:
		return "pipeline"
	case DealCalculator:
		return "calculator"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Label is the sidebar label.
func (v View) Label() string {
	switch v {
	case Dashboard:
		return "Dashboard"
	case NationwideMap:
		return "Nationwide Map"
	case DealPipeline:
		return "Deal Pipeline (CRM)"
	case DealCalculator:
		return "Deal Calculator"
	}
	return v.String()
}

// Title is the page heading.
func (v View) Title() string {
	switch v {
	case Dashboard:
		return "EXECUTIVE OVERVIEW"
	case NationwideMap:
		return "NATIONWIDE ASSET TRACKER"
	case DealPipeline:
		return "LEAD MANAGEMENT"
	case DealCalculator:
		return "RAPID DEAL ANALYZER"
	}
	return strings.ToUpper(v.String())
}

// ParseView accepts either the slug or the sidebar label, case-insensitively.
func ParseView(name string) (View, error) {
	trimmed := strings.TrimSpace(name)
	for _, v := range All() {
		if strings.EqualFold(trimmed, v.String()) || strings.EqualFold(trimmed, v.Label()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", name)
}
