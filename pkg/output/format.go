// Package output provides utilities for formatting and displaying view snapshots.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/trident/internal/session"
	"github.com/iwvelando/trident/internal/valuation"
	"github.com/iwvelando/trident/internal/view"
	"github.com/iwvelando/trident/pkg/format"
	"github.com/iwvelando/trident/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rendering of snap.
func PrettyFormat(w io.Writer, snap view.Snapshot) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "=== %s ===\n", snap.Title)

	for _, m := range snap.Metrics {
		_, _ = fmt.Fprintf(w, "%-16s | %-10s | %s\n", m.Label, m.Value, m.Delta)
	}
	for _, s := range snap.Series {
		_, _ = fmt.Fprintf(w, "--- %s ---\n", s.Name)
		for _, pt := range s.Points {
			_, _ = p.Fprintf(w, "%s | %.1f\n", pt.Month, pt.Value)
		}
	}

	if len(snap.Markets) > 0 {
		_, _ = fmt.Fprintf(w, "Market           | Lat      | Lon       | Value\n")
		for _, m := range snap.Markets {
			_, _ = fmt.Fprintf(w, "%-16s | %8.4f | %9.4f | %s\n", m.Name, m.Latitude, m.Longitude, format.WholeCurrency(m.Value))
		}
	}

	if snap.View == view.DealPipeline {
		PrettyLeads(w, snap.Leads)
	}

	if snap.Input != nil {
		d := snap.Input.Deal
		_, _ = fmt.Fprintf(w, "Purchase %s | ARV %s | Rehab %s | Rent %s/mo\n",
			format.WholeCurrency(d.PurchasePrice), format.WholeCurrency(d.ARV),
			format.WholeCurrency(d.RehabCost), format.WholeCurrency(d.MonthlyRent))
	}
	for _, a := range snap.Analyses {
		PrettyAnalysis(w, a)
	}
}

// PrettyLeads writes the lead table.
func PrettyLeads(w io.Writer, leads []session.Lead) {
	_, _ = fmt.Fprintf(w, "#  | Property             | Market          | Source       | Status         | Offer\n")
	for i, l := range leads {
		_, _ = fmt.Fprintf(w, "%-2d | %-20s | %-15s | %-12s | %-14s | %s\n",
			i, l.Address, l.Market, l.Source, l.Status, format.Currency(l.OfferPrice))
	}
}

// PrettyAnalysis writes one strategy result.
func PrettyAnalysis(w io.Writer, a valuation.Analysis) {
	_, _ = fmt.Fprintf(w, "--- %s ---\n", a.Strategy)
	switch {
	case a.Flip != nil:
		f := a.Flip
		_, _ = fmt.Fprintf(w, "Net Profit: %s\nInvested: %s\nROI: %s\nSignal: %s\n",
			format.WholeCurrency(f.Profit), format.WholeCurrency(f.InvestedCapital), f.ROI, f.Recommendation)
	case a.Wholesale != nil:
		ws := a.Wholesale
		_, _ = fmt.Fprintf(w, "MAO: %s\nAssignment Fee: %s\nViable: %t\n",
			format.WholeCurrency(ws.MAO), format.WholeCurrency(ws.Fee), ws.Viable)
	case a.BRRRR != nil:
		b := a.BRRRR
		_, _ = fmt.Fprintf(w, "Refinance Loan: %s\nCash Left In Deal: %s\nOutcome: %s\nCash-on-Cash: %s\nSignal: %s\n",
			format.WholeCurrency(b.RefinanceLoan), format.WholeCurrency(b.CashLeft), b.Outcome, b.CashOnCash, b.Recommendation)
	case a.SubjectTo != nil:
		s := a.SubjectTo
		_, _ = fmt.Fprintf(w, "Monthly Cashflow: %s\nEntry Fee: %s\nCash-on-Cash: %s\nSignal: %s\n",
			format.WholeCurrency(s.MonthlyCashflow), format.WholeCurrency(s.EntryFee), s.CashOnCash, s.Recommendation)
		if s.SellerUnderwater {
			_, _ = fmt.Fprintf(w, "Warning: seller owes %s more than the price\n", format.WholeCurrency(-s.EntryFee))
		}
	}
}

// CsvFormat writes the tabular part of snap in comma-separated value format.
func CsvFormat(w io.Writer, snap view.Snapshot) error {
	switch {
	case snap.View == view.DealPipeline:
		return CsvLeads(w, snap.Leads)
	case len(snap.Analyses) > 0:
		return CsvAnalyses(w, snap.Analyses)
	case len(snap.Markets) > 0:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"market", "latitude", "longitude", "value"})
		for _, m := range snap.Markets {
			_ = cw.Write([]string{m.Name, fmt.Sprintf("%.4f", m.Latitude), fmt.Sprintf("%.4f", m.Longitude), csvNumber(m.Value)})
		}
		cw.Flush()
		return cw.Error()
	default:
		return CsvDashboard(w, snap.Metrics, snap.Series)
	}
}

// CsvDashboard writes the metric cards and chart series as one long table:
// kind,name,month,value,delta. Metric rows have no month; series rows have no delta.
func CsvDashboard(w io.Writer, metrics []view.Metric, series []view.Series) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"kind", "name", "month", "value", "delta"})
	for _, m := range metrics {
		_ = cw.Write([]string{"metric", m.Label, "", m.Value, m.Delta})
	}
	for _, s := range series {
		for _, pt := range s.Points {
			_ = cw.Write([]string{"series", s.Name, pt.Month, csvNumber(pt.Value), ""})
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvLeads writes one header line and one line per lead.
func CsvLeads(w io.Writer, leads []session.Lead) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"address", "market", "source", "status", "motivation", "offer_price"})
	for _, l := range leads {
		_ = cw.Write([]string{l.Address, l.Market, string(l.Source), string(l.Status), l.Motivation, csvNumber(l.OfferPrice)})
	}
	cw.Flush()
	return cw.Error()
}

// CsvAnalyses writes one metric per line as strategy,metric,value.
func CsvAnalyses(w io.Writer, analyses []valuation.Analysis) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"strategy", "metric", "value"})
	for _, a := range analyses {
		for _, kv := range analysisFields(a) {
			_ = cw.Write([]string{a.Strategy.String(), kv[0], kv[1]})
		}
	}
	cw.Flush()
	return cw.Error()
}

func analysisFields(a valuation.Analysis) [][2]string {
	num := csvNumber
	ratio := func(r valuation.Ratio) string {
		if !r.Defined {
			return "n/a"
		}
		return num(r.Value)
	}

	switch {
	case a.Flip != nil:
		return [][2]string{
			{"profit", num(a.Flip.Profit)},
			{"selling_cost", num(a.Flip.SellingCost)},
			{"invested_capital", num(a.Flip.InvestedCapital)},
			{"roi", ratio(a.Flip.ROI)},
			{"recommendation", a.Flip.Recommendation.String()},
		}
	case a.Wholesale != nil:
		return [][2]string{
			{"mao", num(a.Wholesale.MAO)},
			{"fee", num(a.Wholesale.Fee)},
			{"viable", fmt.Sprintf("%t", a.Wholesale.Viable)},
		}
	case a.BRRRR != nil:
		return [][2]string{
			{"refinance_loan", num(a.BRRRR.RefinanceLoan)},
			{"cash_left", num(a.BRRRR.CashLeft)},
			{"outcome", strings.ToLower(strings.ReplaceAll(a.BRRRR.Outcome.String(), " ", "_"))},
			{"cash_on_cash", ratio(a.BRRRR.CashOnCash)},
			{"recommendation", a.BRRRR.Recommendation.String()},
		}
	case a.SubjectTo != nil:
		return [][2]string{
			{"monthly_cashflow", num(a.SubjectTo.MonthlyCashflow)},
			{"annual_cashflow", num(a.SubjectTo.AnnualCashflow)},
			{"entry_fee", num(a.SubjectTo.EntryFee)},
			{"seller_underwater", fmt.Sprintf("%t", a.SubjectTo.SellerUnderwater)},
			{"cash_on_cash", ratio(a.SubjectTo.CashOnCash)},
			{"recommendation", a.SubjectTo.Recommendation.String()},
		}
	}
	return nil
}

// csvNumber renders a cent-rounded value, never as negative zero.
func csvNumber(v float64) string {
	r := mathutil.Round(v)
	if r == 0 {
		r = 0
	}
	return fmt.Sprintf("%.2f", r)
}
