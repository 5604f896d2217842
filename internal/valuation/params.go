package valuation

import (
	"math"

	"github.com/iwvelando/trident/pkg/constants"
	"github.com/iwvelando/trident/pkg/mathutil"
)

// Parameters holds the business-rule constants the engine applies. The
// dashboard variants disagree on most of them, so none are hard-coded.
type Parameters struct {
	SellingCostFraction float64 `yaml:"sellingCostFraction"`
	MAOFraction         float64 `yaml:"maoFraction"`
	RefinanceLTV        float64 `yaml:"refinanceLTV"`
	DownPaymentFraction float64 `yaml:"downPaymentFraction"`
	ApproveThreshold    float64 `yaml:"approveThreshold"`
	CautionThreshold    float64 `yaml:"cautionThreshold"`
	CapitalBasis        string  `yaml:"capitalBasis"`
}

// DefaultParameters returns the documented defaults.
func DefaultParameters() Parameters {
	return Parameters{
		SellingCostFraction: constants.DefaultSellingCostFraction,
		MAOFraction:         constants.DefaultMAOFraction,
		RefinanceLTV:        constants.DefaultRefinanceLTV,
		DownPaymentFraction: constants.DefaultDownPaymentFraction,
		ApproveThreshold:    constants.DefaultApproveThreshold,
		CautionThreshold:    constants.DefaultCautionThreshold,
		CapitalBasis:        constants.CapitalBasisDownPayment,
	}
}

// Validate checks fractions lie in [0, 1], thresholds are finite and ordered,
// and the capital basis is known.
func (p Parameters) Validate() error {
	fractions := []struct {
		field string
		value float64
	}{
		{"sellingCostFraction", p.SellingCostFraction},
		{"maoFraction", p.MAOFraction},
		{"refinanceLTV", p.RefinanceLTV},
		{"downPaymentFraction", p.DownPaymentFraction},
	}
	for _, f := range fractions {
		if math.IsNaN(f.value) || !mathutil.InUnitInterval(f.value) {
			return &InputError{Field: f.field, Value: f.value, Reason: "must be a fraction between 0 and 1"}
		}
	}

	if !mathutil.IsFinite(p.ApproveThreshold) {
		return &InputError{Field: "approveThreshold", Value: p.ApproveThreshold, Reason: "must be a finite number"}
	}
	if !mathutil.IsFinite(p.CautionThreshold) {
		return &InputError{Field: "cautionThreshold", Value: p.CautionThreshold, Reason: "must be a finite number"}
	}
	if p.CautionThreshold > p.ApproveThreshold {
		return &InputError{Field: "cautionThreshold", Value: p.CautionThreshold, Reason: "must not exceed approveThreshold"}
	}

	switch p.CapitalBasis {
	case constants.CapitalBasisDownPayment, constants.CapitalBasisTotalInvestment:
	default:
		return &InputError{Field: "capitalBasis", Reason: "expected " + constants.CapitalBasisDownPayment +
			" or " + constants.CapitalBasisTotalInvestment + ", got " + p.CapitalBasis}
	}
	return nil
}
