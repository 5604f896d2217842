// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/trident/internal/session"
	"github.com/iwvelando/trident/internal/valuation"
)

// FindAnalysis finds the result for a strategy in the analyses slice.
// Returns a pointer to the analysis if found, nil otherwise.
func FindAnalysis(analyses []valuation.Analysis, strategy valuation.Strategy) *valuation.Analysis {
	for i := range analyses {
		if analyses[i].Strategy == strategy {
			return &analyses[i]
		}
	}
	return nil
}

// FindLead finds a lead by its exact address.
// Returns a pointer to the lead if found, nil otherwise.
func FindLead(leads []session.Lead, address string) *session.Lead {
	for i := range leads {
		if leads[i].Address == address {
			return &leads[i]
		}
	}
	return nil
}
