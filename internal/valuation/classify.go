package valuation

import (
	"errors"

	"github.com/iwvelando/trident/pkg/format"
	"github.com/iwvelando/trident/pkg/mathutil"
)

// CashOutcome classifies the sign of the BRRRR cash left in the deal.
type CashOutcome int

const (
	CashLeftIn CashOutcome = iota
	BreakEven
	CashOut
)

func (o CashOutcome) String() string {
	switch o {
	case CashLeftIn:
		return "Cash Left In"
	case BreakEven:
		return "Break Even"
	case CashOut:
		return "Cash Out"
	}
	return "unknown"
}

// ClassifyCashLeft maps cash left in the deal onto a CashOutcome. Anything
// within a cent of zero is BreakEven.
func ClassifyCashLeft(cashLeft float64) CashOutcome {
	switch {
	case mathutil.IsZero(cashLeft):
		return BreakEven
	case cashLeft > 0:
		return CashLeftIn
	default:
		return CashOut
	}
}

// Recommendation is the buy/no-buy signal.
type Recommendation int

const (
	Rejected Recommendation = iota
	Caution
	Approved
)

func (r Recommendation) String() string {
	switch r {
	case Approved:
		return "Approved"
	case Caution:
		return "Caution"
	case Rejected:
		return "Rejected"
	}
	return "unknown"
}

// Recommend compares an ROI percentage against the configured thresholds.
func Recommend(roi, approveThreshold, cautionThreshold float64) Recommendation {
	switch {
	case roi > approveThreshold:
		return Approved
	case roi > cautionThreshold:
		return Caution
	default:
		return Rejected
	}
}

// Ratio is a percentage that may be undefined, e.g. ROI on zero capital.
type Ratio struct {
	Value   float64
	Defined bool
}

// NewRatio converts the result of ROI into a Ratio. Only ErrDivideByZero is
// absorbed; any other error is returned.
func NewRatio(value float64, err error) (Ratio, error) {
	if errors.Is(err, ErrDivideByZero) {
		return Ratio{}, nil
	}
	if err != nil {
		return Ratio{}, err
	}
	return Ratio{Value: value, Defined: true}, nil
}

func (r Ratio) String() string {
	if !r.Defined {
		return "n/a"
	}
	return format.Percent(r.Value)
}
