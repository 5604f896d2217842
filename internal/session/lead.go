// Package session holds the ephemeral, in-memory state of one interactive
// session: the investor's liquid capital and the leads pipeline.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/trident/pkg/mathutil"
)

// Source is where a lead came from. Values other than the named ones are
// allowed and displayed as-is.
type Source string

const (
	SourceDirectMail Source = "Direct Mail"
	SourceWholesaler Source = "Wholesaler"
	SourceColdCall   Source = "Cold Call"
	SourcePPC        Source = "PPC"
)

// Status is the position of a lead in the pipeline.
type Status string

const (
	StatusNewLead       Status = "New Lead"
	StatusNegotiating   Status = "Negotiating"
	StatusUnderContract Status = "Under Contract"
	StatusClosed        Status = "Closed"
)

// Statuses lists the pipeline stages in order.
func Statuses() []Status {
	return []Status{StatusNewLead, StatusNegotiating, StatusUnderContract, StatusClosed}
}

// ParseStatus matches a status case-insensitively.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown lead status %q", s)
}

// Active reports whether the lead is still being worked.
func (s Status) Active() bool {
	return s != StatusClosed
}

// Lead is a prospective property acquisition.
type Lead struct {
	Address    string  `yaml:"address"`
	Market     string  `yaml:"market,omitempty"`
	Source     Source  `yaml:"source"`
	Status     Status  `yaml:"status"`
	Motivation string  `yaml:"motivation,omitempty"`
	OfferPrice float64 `yaml:"offerPrice"`
}

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("lead validation failed")

// ValidationError identifies the rejected row and field of a lead replacement.
type ValidationError struct {
	Row    int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lead row %d: %s %s", e.Row, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidateLeads checks every row and returns the first violation. Addresses
// must be present and unique once whitespace and case are normalized.
func ValidateLeads(leads []Lead) error {
	seen := make(map[string]int, len(leads))
	for i, lead := range leads {
		if !mathutil.IsFinite(lead.OfferPrice) {
			return &ValidationError{Row: i, Field: "offerPrice", Reason: "must be a number"}
		}
		if lead.OfferPrice < 0 {
			return &ValidationError{Row: i, Field: "offerPrice", Reason: "must not be negative"}
		}

		key := normalizeAddress(lead.Address)
		if key == "" {
			return &ValidationError{Row: i, Field: "address", Reason: "is required"}
		}
		if first, ok := seen[key]; ok {
			return &ValidationError{Row: i, Field: "address", Reason: fmt.Sprintf("duplicates row %d", first)}
		}
		seen[key] = i
	}
	return nil
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// DefaultLeads returns the seed pipeline of a new session.
func DefaultLeads() []Lead {
	return []Lead{
		{Address: "12 Ocean Dr", Market: "Miami, FL", Source: SourceDirectMail, Status: StatusNegotiating, Motivation: "Inherited, out of state", OfferPrice: 450000},
		{Address: "45 Ranch Rd", Market: "Austin, TX", Source: SourceWholesaler, Status: StatusUnderContract, Motivation: "Tired landlord", OfferPrice: 320000},
		{Address: "88 Industrial", Market: "Detroit, MI", Source: SourceColdCall, Status: StatusNewLead, Motivation: "Tax lien", OfferPrice: 150000},
		{Address: "310 Magnolia Ave", Market: "Nashville, TN", Source: SourcePPC, Status: StatusNewLead, Motivation: "Divorce", OfferPrice: 210000},
	}
}
