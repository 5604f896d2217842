package integration

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iwvelando/trident/internal/config"
	"github.com/iwvelando/trident/internal/session"
	"github.com/iwvelando/trident/internal/valuation"
	"github.com/iwvelando/trident/internal/view"
	"github.com/iwvelando/trident/pkg/output"
	"github.com/iwvelando/trident/pkg/testutil"
	"go.uber.org/zap"
)

type harness struct {
	conf     *config.Configuration
	manager  *session.Manager
	engine   *valuation.Engine
	provider *view.StaticProvider
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../../config.yaml.example")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	manager, err := session.NewManager(logger, session.Seed{Capital: conf.Session.Capital, Leads: conf.Session.Leads})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	engine, err := valuation.NewEngine(logger, conf.Valuation)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	provider, err := view.NewStaticProvider(conf.Dashboard.Series)
	if err != nil {
		t.Fatalf("NewStaticProvider() error = %v", err)
	}
	return &harness{conf: conf, manager: manager, engine: engine, provider: provider}
}

func (h *harness) builder(store *session.Store) *view.Builder {
	return view.NewBuilder(zap.NewNop(), store, h.engine, h.provider, view.Options{
		Metrics:     h.conf.Dashboard.Metrics,
		Markets:     h.conf.Dashboard.Markets,
		SeriesNames: h.provider.Names(),
		Calculator:  h.conf.Calculator,
	})
}

// TestSessionLifecycle opens a session, edits its pipeline and renders every
// view the way the CLI does.
func TestSessionLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	id, store, err := h.manager.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.manager.Close(id)

	if err := store.AddLead(session.Lead{Address: "9 Bayview Ct", Market: "Tampa, FL", Status: session.StatusNewLead, OfferPrice: 275000}); err != nil {
		t.Fatalf("AddLead() error = %v", err)
	}
	if err := store.AddLead(session.Lead{Address: "12 ocean dr", OfferPrice: 1}); err == nil {
		t.Fatal("expected duplicate address to be rejected")
	}

	b := h.builder(store)
	for _, v := range view.All() {
		snap, err := b.Build(ctx, v)
		if err != nil {
			t.Fatalf("Build(%s) error = %v", v, err)
		}

		var pretty, csv bytes.Buffer
		output.PrettyFormat(&pretty, snap)
		if err := output.CsvFormat(&csv, snap); err != nil {
			t.Fatalf("CsvFormat(%s) error = %v", v, err)
		}
		if !strings.Contains(pretty.String(), v.Title()) {
			t.Errorf("%s: pretty output missing title", v)
		}
		if csv.Len() == 0 {
			t.Errorf("%s: empty csv output", v)
		}
	}

	snap, err := b.Build(ctx, view.DealPipeline)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(snap.Leads) != len(h.conf.Session.Leads)+1 {
		t.Errorf("expected %d leads, got %d", len(h.conf.Session.Leads)+1, len(snap.Leads))
	}
	if lead := testutil.FindLead(snap.Leads, "9 Bayview Ct"); lead == nil || lead.Market != "Tampa, FL" {
		t.Errorf("added lead missing from pipeline: %+v", lead)
	}

	calc, err := b.Build(ctx, view.DealCalculator)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	flip := testutil.FindAnalysis(calc.Analyses, valuation.Flip)
	if flip == nil || flip.Flip.Recommendation != valuation.Approved {
		t.Errorf("expected approved flip for the configured calculator, got %+v", flip)
	}

	h.manager.Close(id)
	if _, ok := h.manager.Get(id); ok {
		t.Error("session still open after Close")
	}
}

// TestSessionsAreIsolated checks that edits in one session never reach another.
func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t)

	idA, a, err := h.manager.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	idB, b, err := h.manager.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.manager.Close(idA)
	defer h.manager.Close(idB)

	if err := a.ReplaceLeads(nil); err != nil {
		t.Fatalf("ReplaceLeads() error = %v", err)
	}
	a.SetCapital(1)

	if got := len(b.Leads()); got != len(h.conf.Session.Leads) {
		t.Errorf("session B leads changed to %d", got)
	}
	if b.Capital() != h.conf.Session.Capital {
		t.Errorf("session B capital changed to %v", b.Capital())
	}
}
