package cli

import (
	"strings"

	"github.com/iwvelando/trident/internal/valuation"
	"github.com/iwvelando/trident/internal/view"
	"github.com/spf13/cobra"
)

// AnalyzeCmd evaluates one deal. Flags that are not given fall back to the
// configured calculator inputs.
func AnalyzeCmd(a *app) *cobra.Command {
	var (
		price, arv, rehab, rent     float64
		payment, expenses, mortgage float64
	)

	names := []string{"all"}
	for _, s := range valuation.Strategies() {
		names = append(names, s.String())
	}

	cmd := &cobra.Command{
		Use:       "analyze [" + strings.Join(names, "|") + "]",
		Short:     "Evaluate a deal under one or every strategy",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			strategies := valuation.Strategies()
			if len(args) == 1 && args[0] != "all" {
				s, err := valuation.ParseStrategy(args[0])
				if err != nil {
					return err
				}
				strategies = []valuation.Strategy{s}
			}

			input := a.conf.Calculator
			flags := cmd.Flags()
			override := func(name string, dst *float64, value float64) {
				if flags.Changed(name) {
					*dst = value
				}
			}
			override("price", &input.Deal.PurchasePrice, price)
			override("arv", &input.Deal.ARV, arv)
			override("rehab", &input.Deal.RehabCost, rehab)
			override("rent", &input.Deal.MonthlyRent, rent)
			override("payment", &input.Terms.AssumedMonthlyPayment, payment)
			override("expenses", &input.Terms.FixedMonthlyExpenses, expenses)
			override("mortgage-balance", &input.Terms.ExistingMortgageBalance, mortgage)

			engine, err := a.engine()
			if err != nil {
				return err
			}

			analyses := make([]valuation.Analysis, 0, len(strategies))
			for _, s := range strategies {
				result, err := engine.Analyze(s, input.Deal, input.Terms)
				if err != nil {
					return err
				}
				analyses = append(analyses, result)
			}

			return a.render(cmd.OutOrStdout(), view.Snapshot{
				View:     view.DealCalculator,
				Title:    view.DealCalculator.Title(),
				Input:    &input,
				Analyses: analyses,
			})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&price, "price", 0, "purchase price")
	f.Float64Var(&arv, "arv", 0, "after repair value")
	f.Float64Var(&rehab, "rehab", 0, "rehab budget")
	f.Float64Var(&rent, "rent", 0, "monthly rent")
	f.Float64Var(&payment, "payment", 0, "assumed monthly mortgage payment (subject-to)")
	f.Float64Var(&expenses, "expenses", 0, "fixed monthly expenses (subject-to)")
	f.Float64Var(&mortgage, "mortgage-balance", 0, "existing mortgage balance (subject-to)")
	return cmd
}
