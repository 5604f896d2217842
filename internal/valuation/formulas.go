// Package valuation computes the metrics an investor uses to judge a deal:
// flip profit and ROI, the 70% rule, wholesale fees, BRRRR cash left in the
// deal and subject-to cashflow. Every function here is pure.
package valuation

import (
	"github.com/iwvelando/trident/pkg/constants"
	"github.com/iwvelando/trident/pkg/mathutil"
)

// FlipProfit is ARV minus price, rehab and selling costs, where selling costs
// are feeFraction of ARV. A negative result is a loss.
func FlipProfit(arv, price, rehab, feeFraction float64) float64 {
	// Explicit conversion prevents FMA fusion.
	return arv - price - rehab - float64(arv*feeFraction)
}

// SellingCost is the portion of ARV lost to selling the property.
func SellingCost(arv, feeFraction float64) float64 {
	return arv * feeFraction
}

// ROI returns profit as a percentage of invested capital. It returns
// ErrDivideByZero instead of an infinity when nothing was invested or the
// capital is too small for the quotient to be finite.
func ROI(profit, investedCapital float64) (float64, error) {
	if investedCapital == 0 {
		return 0, ErrDivideByZero
	}
	roi := mathutil.ToPercent(profit / investedCapital)
	if !mathutil.IsFinite(roi) {
		return 0, ErrDivideByZero
	}
	return roi, nil
}

// InvestedCapital returns the ROI denominator for the given basis. Unknown
// bases are reported as an InputError on "capitalBasis".
func InvestedCapital(basis string, price, rehab, downPaymentFraction float64) (float64, error) {
	switch basis {
	case constants.CapitalBasisDownPayment:
		return price*downPaymentFraction + rehab, nil
	case constants.CapitalBasisTotalInvestment:
		return price + rehab, nil
	default:
		return 0, &InputError{Field: "capitalBasis", Reason: "unknown capital basis " + basis}
	}
}

// MAO is the maximum allowable offer: arv*fraction - rehab.
func MAO(arv, rehab, fraction float64) float64 {
	return float64(arv*fraction) - rehab
}

// WholesaleFee is the assignment margin between the MAO and the contract
// price. Negative means there is no fee to be made.
func WholesaleFee(mao, price float64) float64 {
	return mao - price
}

// CashLeftInDeal is the capital still tied up after a BRRRR refinance at ltv.
// A negative value is cash returned to the investor.
func CashLeftInDeal(price, rehab, arv, ltv float64) float64 {
	// Explicit conversion prevents FMA fusion.
	return (price + rehab) - float64(arv*ltv)
}

// RefinanceLoan is the size of the refinance loan against the ARV.
func RefinanceLoan(arv, ltv float64) float64 {
	return arv * ltv
}

// SubjectToCashflow is the monthly cashflow after taking over the existing payment.
func SubjectToCashflow(rent, assumedPayment, fixedExpenses float64) float64 {
	return rent - assumedPayment - fixedExpenses
}

// EntryFee is the cash due to the seller on a subject-to deal. It is never
// clamped: a negative fee means the seller owes more than the price.
func EntryFee(price, mortgageBalance float64) float64 {
	return price - mortgageBalance
}
