package validation

import (
	"fmt"
)

// Typical ranges seen in practice. Values outside them are legal but usually
// a typo, e.g. 10 instead of 0.10.
const (
	minSellingCostFraction = 0.05
	maxSellingCostFraction = 0.15
	minMAOFraction         = 0.60
	maxMAOFraction         = 0.80
	maxRefinanceLTV        = 0.80
)

// ValidateSellingCost warns when the selling cost fraction is unusual.
func ValidateSellingCost(fraction float64) string {
	if fraction < minSellingCostFraction || fraction > maxSellingCostFraction {
		return fmt.Sprintf("selling cost fraction %.2f is outside the usual %.2f-%.2f range",
			fraction, minSellingCostFraction, maxSellingCostFraction)
	}
	return ""
}

// ValidateMAOFraction warns when the MAO rule strays far from 70%.
func ValidateMAOFraction(fraction float64) string {
	if fraction < minMAOFraction || fraction > maxMAOFraction {
		return fmt.Sprintf("MAO fraction %.2f is outside the usual %.2f-%.2f range",
			fraction, minMAOFraction, maxMAOFraction)
	}
	return ""
}

// ValidateRefinanceLTV warns when lenders are unlikely to refinance at ltv.
func ValidateRefinanceLTV(ltv float64) string {
	if ltv > maxRefinanceLTV {
		return fmt.Sprintf("refinance LTV %.2f exceeds the %.2f most lenders offer on investment property",
			ltv, maxRefinanceLTV)
	}
	return ""
}

// ConfigValidator collects the settings that are checked for warnings.
type ConfigValidator struct {
	Valuation ValuationConfig
	Session   SessionConfig
}

// ValuationConfig mirrors the valuation parameters.
type ValuationConfig struct {
	SellingCostFraction float64
	MAOFraction         float64
	RefinanceLTV        float64
	ApproveThreshold    float64
}

// SessionConfig mirrors the session seed.
type SessionConfig struct {
	Capital   float64
	LeadCount int
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	for _, warning := range []string{
		ValidateSellingCost(cv.Valuation.SellingCostFraction),
		ValidateMAOFraction(cv.Valuation.MAOFraction),
		ValidateRefinanceLTV(cv.Valuation.RefinanceLTV),
	} {
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if cv.Valuation.ApproveThreshold <= 0 {
		warnings = append(warnings, fmt.Sprintf("approve threshold %.1f%% approves every profitable deal",
			cv.Valuation.ApproveThreshold))
	}

	if cv.Session.Capital < 0 {
		warnings = append(warnings, fmt.Sprintf("starting capital %.2f is negative", cv.Session.Capital))
	}

	if cv.Session.LeadCount == 0 {
		warnings = append(warnings, "no seed leads configured; the pipeline starts empty")
	}

	return warnings
}
