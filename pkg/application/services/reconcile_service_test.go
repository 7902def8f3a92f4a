package services

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/exfactory/shipmatch/pkg/application/dto"
	"github.com/exfactory/shipmatch/pkg/domain/entities"
	"github.com/exfactory/shipmatch/pkg/infrastructure/repositories/memory"
)

func sup(job, po, style, color, qty string) *entities.SupplyRecord {
	return &entities.SupplyRecord{
		JobNo:        job,
		PONumber:     po,
		StyleRefNo:   style,
		Color:        color,
		AvailableQty: entities.ParseAvailableQty(qty),
	}
}

func dem(job, po, style, color, buyer, qty string) *entities.DemandRecord {
	return &entities.DemandRecord{
		JobNo:        job,
		PONumber:     po,
		StyleRefNo:   style,
		Color:        color,
		Buyer:        buyer,
		RequestedQty: entities.ParseRequestedQty(qty),
	}
}

// recordingSink captures progress reports for assertions.
type recordingSink struct {
	passes []string
	notes  []string
}

func (s *recordingSink) PassStarted(strategy string, pending int) {
	s.passes = append(s.passes, strategy)
}
func (s *recordingSink) Progress(string, int, int) {}
func (s *recordingSink) Note(message string) {
	s.notes = append(s.notes, message)
}

func runReconcile(
	t *testing.T,
	supplies []*entities.SupplyRecord,
	demands []*entities.DemandRecord,
	hasBuyer bool,
	cfg entities.ReconcileConfig,
	sink ProgressSink,
) *dto.ReconcileResult {
	t.Helper()

	supplyRepo := memory.NewSupplyRepository()
	if err := supplyRepo.LoadSupplies(supplies); err != nil {
		t.Fatalf("failed to load supplies: %v", err)
	}
	demandRepo := memory.NewDemandRepository()
	if err := demandRepo.LoadDemands(&entities.DemandBatch{Records: demands, HasBuyer: hasBuyer}); err != nil {
		t.Fatalf("failed to load demands: %v", err)
	}

	service := NewReconcileServiceWithProgress(sink)
	result, err := service.Reconcile(context.Background(), supplyRepo, demandRepo, cfg)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	return result
}

func TestReconcile_POMatchOk(t *testing.T) {
	// Scenario: a demand PO with exactly matching aggregated supply.
	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", "50"),
	}
	demands := []*entities.DemandRecord{
		dem("X9999", "100", "S9", "BLUE", "", "50"),
	}

	result := runReconcile(t, supplies, demands, false, entities.ReconcileConfig{}, nil)

	outcome := demands[0].Outcome()
	if outcome.Label != entities.LabelOk {
		t.Errorf("expected Ok, got %v", outcome.Label)
	}
	if outcome.Strategy != entities.StrategyPO {
		t.Errorf("expected PO strategy, got %v", outcome.Strategy)
	}
	if got := result.Summary.StrategyCounts[entities.StrategyPO]; got != 1 {
		t.Errorf("expected 1 PO strategy count, got %d", got)
	}
}

func TestReconcile_MultiRowAggregation(t *testing.T) {
	// Two supply rows share the PO; their quantities sum before comparison.
	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", "120"),
		sup("J0002", "100", "S1", "RED", "80"),
	}
	demands := []*entities.DemandRecord{
		dem("X0001", "100", "S1", "RED", "", "200"),
	}

	runReconcile(t, supplies, demands, false, entities.ReconcileConfig{}, nil)

	if got := demands[0].Outcome().Label; got != entities.LabelOk {
		t.Errorf("aggregated 120+80 vs 200 should be Ok, got %v", got)
	}
}

func TestReconcile_JobPOPass(t *testing.T) {
	// Job+PO matching uses the last four characters of the job number; the
	// demand job differs in its prefix only.
	supplies := []*entities.SupplyRecord{
		sup("J0001", "200", "S1", "RED", "80"),
	}
	demands := []*entities.DemandRecord{
		dem("X0001", "200", "S1", "RED", "", "50"),
	}

	service := NewReconcileService()
	err := service.runPass(context.Background(), entities.StrategyJobPO,
		entities.ReconcileConfig{}, supplies, demands,
		func(*entities.DemandRecord) bool { return true })
	if err != nil {
		t.Fatalf("runPass failed: %v", err)
	}

	outcome := demands[0].Outcome()
	if outcome.Label != entities.LabelLessShipment {
		t.Errorf("available 80 vs requested 50 should be Less Shipment, got %v", outcome.Label)
	}
	if outcome.Strategy != entities.StrategyJobPO {
		t.Errorf("expected Job+PO strategy, got %v", outcome.Strategy)
	}
	if got := outcome.Status(); got != "Less Shipment (Job+PO Match: 80 vs 50)" {
		t.Errorf("unexpected status: %q", got)
	}
}

func TestReconcile_StyleColorFallback(t *testing.T) {
	// Scenario: PO and Job+PO both miss, Style+Color resolves.
	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", "10"),
	}
	demands := []*entities.DemandRecord{
		dem("", "999", "S1", "RED", "", "30"),
	}

	runReconcile(t, supplies, demands, false, entities.ReconcileConfig{}, nil)

	outcome := demands[0].Outcome()
	if outcome.Label != entities.LabelOverShipment {
		t.Errorf("available 10 vs requested 30 should be Over Shipment, got %v", outcome.Label)
	}
	if outcome.Strategy != entities.StrategyStyleColor {
		t.Errorf("expected Style+Color strategy, got %v", outcome.Strategy)
	}
}

func TestReconcile_NoMatchFound(t *testing.T) {
	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", "10"),
	}
	demands := []*entities.DemandRecord{
		dem("Z0009", "999", "S9", "PURPLE", "", "30"),
	}

	runReconcile(t, supplies, demands, false, entities.ReconcileConfig{}, nil)

	outcome := demands[0].Outcome()
	if outcome.Label != entities.LabelNoMatchFound {
		t.Errorf("expected No Match Found, got %v", outcome.Label)
	}
	if outcome.Classified() {
		t.Error("no-match outcome should not carry a strategy")
	}
}

func TestReconcile_AbsentVersusZero(t *testing.T) {
	// A key whose only supply rows are blank is "supply found, no usable
	// quantity" (No Shipment); a key with no supply rows at all is "no
	// supply found" (No Match Found). The two must never be conflated.
	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", ""),
	}
	demands := []*entities.DemandRecord{
		dem("", "100", "", "", "", "50"),
		dem("", "999", "", "", "", "50"),
	}

	runReconcile(t, supplies, demands, false, entities.ReconcileConfig{}, nil)

	if got := demands[0].Outcome().Label; got != entities.LabelNoShipment {
		t.Errorf("blank-only supply should be No Shipment, got %v", got)
	}
	if got := demands[1].Outcome().Label; got != entities.LabelNoMatchFound {
		t.Errorf("missing supply should be No Match Found, got %v", got)
	}
}

func TestReconcile_CascadePriorityIsWriteOnce(t *testing.T) {
	// The record matches by PO and would also match by Style+Color; the
	// first successful strategy wins and later passes must not revisit it.
	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", "40"),
	}
	demands := []*entities.DemandRecord{
		dem("J0001", "100", "S1", "RED", "", "40"),
	}

	sink := &recordingSink{}
	runReconcile(t, supplies, demands, false, entities.ReconcileConfig{}, sink)

	outcome := demands[0].Outcome()
	if outcome.Strategy != entities.StrategyPO {
		t.Errorf("first strategy should win, got %v", outcome.Strategy)
	}

	expectedPasses := []string{"po_only", "job_po", "style_color"}
	if !reflect.DeepEqual(sink.passes, expectedPasses) {
		t.Errorf("pass order = %v, expected %v", sink.passes, expectedPasses)
	}
}

func TestReconcile_SummaryInvariant(t *testing.T) {
	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", "50"),
		sup("J0002", "200", "S2", "BLUE", ""),
	}
	demands := []*entities.DemandRecord{
		dem("", "100", "", "", "", "50"),
		dem("", "100", "", "", "", "80"),
		dem("", "200", "", "", "", "10"),
		dem("", "999", "S2", "BLUE", "", "10"),
		dem("", "888", "S9", "PINK", "", "10"),
	}

	result := runReconcile(t, supplies, demands, false, entities.ReconcileConfig{}, nil)

	sum := 0
	for _, n := range result.Summary.LabelCounts {
		sum += n
	}
	if sum != len(demands) {
		t.Errorf("label counts sum to %d, expected %d", sum, len(demands))
	}
	if result.Summary.Total != len(demands) {
		t.Errorf("total = %d, expected %d", result.Summary.Total, len(demands))
	}
	for _, record := range demands {
		if !record.Resolved() {
			t.Errorf("row %d left unresolved", record.RowIndex)
		}
	}
}

func TestReconcile_Idempotence(t *testing.T) {
	build := func() ([]*entities.SupplyRecord, []*entities.DemandRecord) {
		supplies := []*entities.SupplyRecord{
			sup("J0001", "100", "S1", "RED", "50"),
			sup("J0002", "200", "S2", "BLUE", "30"),
		}
		demands := []*entities.DemandRecord{
			dem("", "100", "", "", "", "50"),
			dem("", "200", "", "", "", "80"),
			dem("", "999", "S2", "BLUE", "", "30"),
			dem("", "888", "S9", "PINK", "", "10"),
		}
		return supplies, demands
	}

	supplies1, demands1 := build()
	result1 := runReconcile(t, supplies1, demands1, false, entities.ReconcileConfig{}, nil)

	supplies2, demands2 := build()
	result2 := runReconcile(t, supplies2, demands2, false, entities.ReconcileConfig{}, nil)

	for i := range demands1 {
		s1 := demands1[i].Outcome().Status()
		s2 := demands2[i].Outcome().Status()
		if s1 != s2 {
			t.Errorf("row %d: outcomes differ between runs: %q vs %q", i, s1, s2)
		}
	}
	if !reflect.DeepEqual(result1.Summary.LabelCounts, result2.Summary.LabelCounts) {
		t.Errorf("label counts differ: %v vs %v", result1.Summary.LabelCounts, result2.Summary.LabelCounts)
	}
	if !reflect.DeepEqual(result1.Summary.StrategyCounts, result2.Summary.StrategyCounts) {
		t.Errorf("strategy counts differ: %v vs %v", result1.Summary.StrategyCounts, result2.Summary.StrategyCounts)
	}
}

func TestReconcile_BuyerSpecificCascade(t *testing.T) {
	cfg := entities.ReconcileConfig{
		BuyerSpecific: true,
		CombinePOIn:   entities.CombineInSource,
		FlaggedBuyers: []string{"Acme"},
	}

	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", "50"),
		// Combined key "ST1-77" over the supply batch.
		sup("J0002", "77", "ST1", "BLUE", "25"),
	}
	demands := []*entities.DemandRecord{
		// Flagged, PO+Job hit.
		dem("X0001", "100", "", "", "ACME", "50"),
		// Flagged, PO+Job misses (job blank), combined key hit: the demand
		// PO column already carries the style-qualified value.
		dem("", "ST1-77", "", "", "ACME", "30"),
		// Flagged, nothing matches: buyer-specific terminal label.
		dem("", "999", "S1", "RED", "ACME", "10"),
		// Not flagged: standard cascade.
		dem("", "100", "", "", "OTHER", "50"),
	}

	sink := &recordingSink{}
	runReconcile(t, supplies, demands, true, cfg, sink)

	if got := demands[0].Outcome(); got.Strategy != entities.StrategyPOJob || got.Label != entities.LabelOk {
		t.Errorf("flagged record should resolve by PO+Job as Ok, got %v/%v", got.Strategy, got.Label)
	}
	if got := demands[1].Outcome(); got.Strategy != entities.StrategyCombined {
		t.Errorf("expected Combined strategy, got %v", got.Strategy)
	}
	if got := demands[1].Outcome().Label; got != entities.LabelOverShipment {
		t.Errorf("available 25 vs requested 30 should be Over Shipment, got %v", got)
	}
	if got := demands[2].Outcome().Label; got != entities.LabelNoMatchBuyer {
		t.Errorf("unmatched flagged record should be buyer no-match, got %v", got)
	}
	if got := demands[2].Outcome().Status(); got != "No Match Found (Buyer Specific)" {
		t.Errorf("unexpected buyer no-match status: %q", got)
	}
	if got := demands[3].Outcome(); got.Strategy != entities.StrategyPO || got.Label != entities.LabelOk {
		t.Errorf("non-flagged record should resolve by PO as Ok, got %v/%v", got.Strategy, got.Label)
	}

	expectedPasses := []string{"po_only", "job_po", "style_color", "po_job", "combined"}
	if !reflect.DeepEqual(sink.passes, expectedPasses) {
		t.Errorf("pass order = %v, expected %v", sink.passes, expectedPasses)
	}
}

func TestReconcile_CombinedKeyOnTarget(t *testing.T) {
	cfg := entities.ReconcileConfig{
		BuyerSpecific: true,
		CombinePOIn:   entities.CombineInTarget,
		FlaggedBuyers: []string{"ACME"},
	}

	// The supply PO column carries the style-qualified value; the demand
	// side builds its combined key from styleRefNo and poNumber.
	supplies := []*entities.SupplyRecord{
		sup("J0001", "ST1-77", "", "", "25"),
	}
	demands := []*entities.DemandRecord{
		dem("", "77", "ST1", "", "ACME", "25"),
	}

	runReconcile(t, supplies, demands, true, cfg, nil)

	outcome := demands[0].Outcome()
	if outcome.Strategy != entities.StrategyCombined || outcome.Label != entities.LabelOk {
		t.Errorf("expected Combined/Ok, got %v/%v", outcome.Strategy, outcome.Label)
	}
}

func TestReconcile_BuyerModeDegradesWithoutBuyerColumn(t *testing.T) {
	cfg := entities.ReconcileConfig{
		BuyerSpecific: true,
		FlaggedBuyers: []string{"ACME"},
	}

	supplies := []*entities.SupplyRecord{
		sup("J0001", "100", "S1", "RED", "50"),
	}
	demands := []*entities.DemandRecord{
		dem("", "100", "", "", "", "50"),
	}

	sink := &recordingSink{}
	runReconcile(t, supplies, demands, false, cfg, sink)

	if len(sink.notes) != 1 || !strings.Contains(sink.notes[0], "no buyer column") {
		t.Fatalf("expected a degradation note, got %v", sink.notes)
	}

	// Everything ran through the standard cascade only.
	expectedPasses := []string{"po_only", "job_po", "style_color"}
	if !reflect.DeepEqual(sink.passes, expectedPasses) {
		t.Errorf("pass order = %v, expected %v", sink.passes, expectedPasses)
	}
	if got := demands[0].Outcome(); got.Strategy != entities.StrategyPO || got.Label != entities.LabelOk {
		t.Errorf("record should resolve by the standard cascade, got %v/%v", got.Strategy, got.Label)
	}
}

func TestReconcile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	supplyRepo := memory.NewSupplyRepository()
	demandRepo := memory.NewDemandRepository()
	if err := demandRepo.LoadDemands(&entities.DemandBatch{}); err != nil {
		t.Fatalf("failed to load demands: %v", err)
	}

	service := NewReconcileService()
	if _, err := service.Reconcile(ctx, supplyRepo, demandRepo, entities.ReconcileConfig{}); err == nil {
		t.Fatal("expected cancellation error")
	}
}
