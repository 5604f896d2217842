package valuation

import (
	"fmt"

	"github.com/iwvelando/trident/pkg/constants"
	"github.com/iwvelando/trident/pkg/mathutil"
	"go.uber.org/zap"
)

// Strategy selects which analysis to run on a deal.
type Strategy int

const (
	Flip Strategy = iota
	Wholesale
	BRRRR
	SubjectTo
)

// Strategies lists every strategy in display order.
func Strategies() []Strategy {
	return []Strategy{Flip, Wholesale, BRRRR, SubjectTo}
}

func (s Strategy) String() string {
	switch s {
	case Flip:
		return "flip"
	case Wholesale:
		return "wholesale"
	case BRRRR:
		return "brrrr"
	case SubjectTo:
		return "subject-to"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// DealInput holds the numeric parameters of a single valuation run.
type DealInput struct {
	PurchasePrice float64 `yaml:"purchasePrice"`
	ARV           float64 `yaml:"arv"`
	RehabCost     float64 `yaml:"rehabCost"`
	MonthlyRent   float64 `yaml:"monthlyRent"`
}

// Validate rejects negative and non-finite fields.
func (d DealInput) Validate() error {
	return requireNonNegative(
		field{"purchasePrice", d.PurchasePrice},
		field{"arv", d.ARV},
		field{"rehabCost", d.RehabCost},
		field{"monthlyRent", d.MonthlyRent},
	)
}

// CreativeTerms are the extra inputs of a subject-to deal.
type CreativeTerms struct {
	AssumedMonthlyPayment   float64 `yaml:"assumedMonthlyPayment"`
	FixedMonthlyExpenses    float64 `yaml:"fixedMonthlyExpenses"`
	ExistingMortgageBalance float64 `yaml:"existingMortgageBalance"`
}

// Validate rejects negative and non-finite fields.
func (c CreativeTerms) Validate() error {
	return requireNonNegative(
		field{"assumedMonthlyPayment", c.AssumedMonthlyPayment},
		field{"fixedMonthlyExpenses", c.FixedMonthlyExpenses},
		field{"existingMortgageBalance", c.ExistingMortgageBalance},
	)
}

type field struct {
	name  string
	value float64
}

// requireFinite rejects results that overflowed float64.
func requireFinite(fields ...field) error {
	for _, f := range fields {
		if !mathutil.IsFinite(f.value) {
			return &InputError{Field: f.name, Value: f.value, Reason: "result is out of range"}
		}
	}
	return nil
}

func requireNonNegative(fields ...field) error {
	for _, f := range fields {
		if !mathutil.IsFinite(f.value) {
			return &InputError{Field: f.name, Value: f.value, Reason: "must be a number"}
		}
		if f.value < 0 {
			return &InputError{Field: f.name, Value: f.value, Reason: "must not be negative"}
		}
	}
	return nil
}

// FlipAnalysis is the result of a fix-and-flip evaluation.
type FlipAnalysis struct {
	Profit          float64
	SellingCost     float64
	InvestedCapital float64
	ROI             Ratio
	Recommendation  Recommendation
}

// WholesaleAnalysis is the result of a wholesale evaluation.
type WholesaleAnalysis struct {
	MAO    float64
	Fee    float64
	Viable bool
}

// BRRRRAnalysis is the result of a buy, rehab, rent, refinance evaluation.
type BRRRRAnalysis struct {
	RefinanceLoan  float64
	CashLeft       float64
	Outcome        CashOutcome
	CashReturned   float64
	MonthlyRent    float64
	CashOnCash     Ratio
	Recommendation Recommendation
}

// SubjectToAnalysis is the result of a subject-to / creative finance evaluation.
type SubjectToAnalysis struct {
	MonthlyCashflow  float64
	AnnualCashflow   float64
	EntryFee         float64
	SellerUnderwater bool
	CashOnCash       Ratio
	Recommendation   Recommendation
}

// Analysis is the union returned by Engine.Analyze; exactly one field is set.
type Analysis struct {
	Strategy  Strategy
	Flip      *FlipAnalysis
	Wholesale *WholesaleAnalysis
	BRRRR     *BRRRRAnalysis
	SubjectTo *SubjectToAnalysis
}

// Engine applies a fixed set of Parameters to deal inputs.
type Engine struct {
	logger *zap.Logger
	params Parameters
}

// NewEngine validates params and returns an engine using them.
func NewEngine(logger *zap.Logger, params Parameters) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid valuation parameters: %w", err)
	}
	return &Engine{logger: logger, params: params}, nil
}

// Analyze runs the analysis for strategy. terms is only read for SubjectTo.
func (e *Engine) Analyze(strategy Strategy, input DealInput, terms CreativeTerms) (Analysis, error) {
	result := Analysis{Strategy: strategy}
	var err error
	switch strategy {
	case Flip:
		var a FlipAnalysis
		a, err = e.AnalyzeFlip(input)
		result.Flip = &a
	case Wholesale:
		var a WholesaleAnalysis
		a, err = e.AnalyzeWholesale(input)
		result.Wholesale = &a
	case BRRRR:
		var a BRRRRAnalysis
		a, err = e.AnalyzeBRRRR(input)
		result.BRRRR = &a
	case SubjectTo:
		var a SubjectToAnalysis
		a, err = e.AnalyzeSubjectTo(input, terms)
		result.SubjectTo = &a
	default:
		return Analysis{}, fmt.Errorf("unknown strategy %s", strategy)
	}
	if err != nil {
		return Analysis{}, err
	}
	return result, nil
}

// AnalyzeFlip computes profit, ROI on the configured capital basis and the
// buy signal.
func (e *Engine) AnalyzeFlip(input DealInput) (FlipAnalysis, error) {
	if err := input.Validate(); err != nil {
		return FlipAnalysis{}, err
	}

	p := e.params
	profit := FlipProfit(input.ARV, input.PurchasePrice, input.RehabCost, p.SellingCostFraction)
	invested, err := InvestedCapital(p.CapitalBasis, input.PurchasePrice, input.RehabCost, p.DownPaymentFraction)
	if err != nil {
		return FlipAnalysis{}, err
	}
	if err := requireFinite(field{"profit", profit}, field{"investedCapital", invested}); err != nil {
		return FlipAnalysis{}, err
	}
	roi, err := NewRatio(ROI(profit, invested))
	if err != nil {
		return FlipAnalysis{}, err
	}

	analysis := FlipAnalysis{
		Profit:          profit,
		SellingCost:     SellingCost(input.ARV, p.SellingCostFraction),
		InvestedCapital: invested,
		ROI:             roi,
		Recommendation:  e.recommend(roi),
	}

	e.logger.Debug(fmt.Sprintf("flip profit %.2f on %.2f invested", profit, invested),
		zap.String("op", "valuation.AnalyzeFlip"),
		zap.Stringer("roi", roi),
		zap.Stringer("recommendation", analysis.Recommendation),
	)
	return analysis, nil
}

// AnalyzeWholesale computes the MAO and the assignment fee left under it.
func (e *Engine) AnalyzeWholesale(input DealInput) (WholesaleAnalysis, error) {
	if err := input.Validate(); err != nil {
		return WholesaleAnalysis{}, err
	}

	mao := MAO(input.ARV, input.RehabCost, e.params.MAOFraction)
	fee := WholesaleFee(mao, input.PurchasePrice)
	if err := requireFinite(field{"mao", mao}, field{"fee", fee}); err != nil {
		return WholesaleAnalysis{}, err
	}

	e.logger.Debug(fmt.Sprintf("wholesale mao %.2f fee %.2f", mao, fee),
		zap.String("op", "valuation.AnalyzeWholesale"),
	)
	return WholesaleAnalysis{MAO: mao, Fee: fee, Viable: mathutil.IsPositive(fee)}, nil
}

// AnalyzeBRRRR computes cash left in the deal after the refinance. Annual
// rent over cash left gives cash-on-cash; a cash-out deal has infinite
// return and is reported as undefined but approved.
func (e *Engine) AnalyzeBRRRR(input DealInput) (BRRRRAnalysis, error) {
	if err := input.Validate(); err != nil {
		return BRRRRAnalysis{}, err
	}

	ltv := e.params.RefinanceLTV
	cashLeft := CashLeftInDeal(input.PurchasePrice, input.RehabCost, input.ARV, ltv)
	if err := requireFinite(field{"cashLeft", cashLeft}); err != nil {
		return BRRRRAnalysis{}, err
	}
	outcome := ClassifyCashLeft(cashLeft)

	analysis := BRRRRAnalysis{
		RefinanceLoan: RefinanceLoan(input.ARV, ltv),
		CashLeft:      cashLeft,
		Outcome:       outcome,
		MonthlyRent:   input.MonthlyRent,
	}

	switch outcome {
	case CashLeftIn:
		annualRent := input.MonthlyRent * constants.MonthsPerYear
		coc, err := NewRatio(ROI(annualRent, cashLeft))
		if err != nil {
			return BRRRRAnalysis{}, err
		}
		analysis.CashOnCash = coc
		analysis.Recommendation = e.recommend(coc)
	case CashOut:
		analysis.CashReturned = -cashLeft
		analysis.Recommendation = Approved
	case BreakEven:
		analysis.Recommendation = Approved
	}

	e.logger.Debug(fmt.Sprintf("brrrr cash left %.2f", cashLeft),
		zap.String("op", "valuation.AnalyzeBRRRR"),
		zap.Stringer("outcome", outcome),
	)
	return analysis, nil
}

// AnalyzeSubjectTo computes cashflow after taking over the existing loan and
// the entry fee owed to the seller.
func (e *Engine) AnalyzeSubjectTo(input DealInput, terms CreativeTerms) (SubjectToAnalysis, error) {
	if err := input.Validate(); err != nil {
		return SubjectToAnalysis{}, err
	}
	if err := terms.Validate(); err != nil {
		return SubjectToAnalysis{}, err
	}

	monthly := SubjectToCashflow(input.MonthlyRent, terms.AssumedMonthlyPayment, terms.FixedMonthlyExpenses)
	entryFee := EntryFee(input.PurchasePrice, terms.ExistingMortgageBalance)
	if err := requireFinite(
		field{"monthlyCashflow", monthly},
		field{"annualCashflow", monthly * constants.MonthsPerYear},
		field{"entryFee", entryFee},
	); err != nil {
		return SubjectToAnalysis{}, err
	}

	analysis := SubjectToAnalysis{
		MonthlyCashflow:  monthly,
		AnnualCashflow:   monthly * constants.MonthsPerYear,
		EntryFee:         entryFee,
		SellerUnderwater: entryFee < 0,
	}

	// Cash-on-cash only means something when cash actually changes hands.
	if entryFee > 0 {
		coc, err := NewRatio(ROI(analysis.AnnualCashflow, entryFee))
		if err != nil {
			return SubjectToAnalysis{}, err
		}
		analysis.CashOnCash = coc
	}
	analysis.Recommendation = e.recommend(analysis.CashOnCash)
	if !analysis.CashOnCash.Defined && mathutil.IsNegative(monthly) {
		analysis.Recommendation = Rejected
	}

	if analysis.SellerUnderwater {
		e.logger.Info(fmt.Sprintf("seller owes %.2f more than the purchase price", -entryFee),
			zap.String("op", "valuation.AnalyzeSubjectTo"),
		)
	}
	return analysis, nil
}

// recommend treats an undefined ratio as needing manual review.
func (e *Engine) recommend(r Ratio) Recommendation {
	if !r.Defined {
		return Caution
	}
	return Recommend(r.Value, e.params.ApproveThreshold, e.params.CautionThreshold)
}
