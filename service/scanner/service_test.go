package scanner

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/elC0mpa/finops-doctor/internal/errors"
	"github.com/elC0mpa/finops-doctor/model"
	"github.com/elC0mpa/finops-doctor/pricing"
)

// fakeInventory serves canned descriptors per resource type
type fakeInventory struct {
	resources map[model.ResourceType][]model.ResourceDescriptor
	err       error
	calls     []model.ResourceType
	filters   [][]string
}

func (f *fakeInventory) ListResources(_ context.Context, rt model.ResourceType, stateFilter []string) ([]model.ResourceDescriptor, error) {
	f.calls = append(f.calls, rt)
	f.filters = append(f.filters, stateFilter)
	if f.err != nil {
		return nil, f.err
	}
	return f.resources[rt], nil
}

// fakeTelemetry serves canned averages keyed by resource ID and metric,
// and can fail for selected resources
type fakeTelemetry struct {
	mu       sync.Mutex
	averages map[string]map[string]float64
	failFor  map[string]bool
	calls    int
}

func (f *fakeTelemetry) SampleUtilization(_ context.Context, r model.ResourceDescriptor, metric string, windowDays int) (model.UtilizationSample, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	sample := model.UtilizationSample{ResourceID: r.ResourceID, Metric: metric, WindowDays: windowDays}
	if f.failFor[r.ResourceID] {
		return sample, errors.New(errors.TypeTelemetryUnavailable, "metric statistics query failed")
	}
	if byMetric, ok := f.averages[r.ResourceID]; ok {
		sample.Average = byMetric[metric]
	}
	return sample, nil
}

func instance(id, sizeClass, state string) model.ResourceDescriptor {
	return model.ResourceDescriptor{
		ResourceID: id,
		Type:       model.ResourceTypeComputeInstance,
		SizeClass:  sizeClass,
		State:      state,
	}
}

func newScanner(inv *fakeInventory, tel *fakeTelemetry) ScanService {
	return NewService(inv, tel, pricing.Default())
}

// A running t3.micro at 3.2% average CPU over 14 days must be flagged
// with the t3 price estimate.
func TestScanIdleComputeInstance(t *testing.T) {
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeComputeInstance: {instance("i-0abc", "t3.micro", model.StateRunning)},
	}}
	tel := &fakeTelemetry{averages: map[string]map[string]float64{
		"i-0abc": {model.MetricCPUPercent: 3.2, model.MetricNetworkInBytes: 120, model.MetricNetworkOutBytes: 80},
	}}

	report, err := newScanner(inv, tel).Scan(context.Background(), ScanRequest{
		ResourceType: model.ResourceTypeComputeInstance,
		CPUThreshold: 10.0,
		WindowDays:   14,
	})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if len(report.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(report.Findings))
	}
	finding := report.Findings[0]
	if !finding.Wasteful {
		t.Error("instance at 3.2% CPU not classified wasteful")
	}
	if finding.EstimatedMonthlyCost != 30.0 {
		t.Errorf("estimated cost = %v, want 30.0 for t3.*", finding.EstimatedMonthlyCost)
	}
	if finding.Reason != "CPU utilization 3.2% over 14 days" {
		t.Errorf("unexpected reason %q", finding.Reason)
	}
	// Every sampled metric is carried on the finding, network included
	wantMetrics := map[string]float64{
		model.MetricCPUPercent:      3.2,
		model.MetricNetworkInBytes:  120,
		model.MetricNetworkOutBytes: 80,
	}
	if !reflect.DeepEqual(finding.Metrics, wantMetrics) {
		t.Errorf("finding metrics = %v, want %v", finding.Metrics, wantMetrics)
	}
	if report.TotalEstimatedMonthlyCost != 30.0 || report.WastefulCount != 1 {
		t.Errorf("report totals = (%v, %d), want (30.0, 1)", report.TotalEstimatedMonthlyCost, report.WastefulCount)
	}
}

func TestScanBusyComputeInstanceNotWasteful(t *testing.T) {
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeComputeInstance: {instance("i-0busy", "m5.large", model.StateRunning)},
	}}
	tel := &fakeTelemetry{averages: map[string]map[string]float64{
		"i-0busy": {model.MetricCPUPercent: 55.0},
	}}

	report, err := newScanner(inv, tel).Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeComputeInstance})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	finding := report.Findings[0]
	if finding.Wasteful {
		t.Error("busy instance classified wasteful")
	}
	// Cost is populated even for non-wasteful findings
	if finding.EstimatedMonthlyCost <= 0 {
		t.Errorf("non-wasteful finding cost = %v, want positive", finding.EstimatedMonthlyCost)
	}
	// but only wasteful findings count toward the total
	if report.TotalEstimatedMonthlyCost != 0 {
		t.Errorf("report total = %v, want 0", report.TotalEstimatedMonthlyCost)
	}
}

// A database below the CPU threshold but above the connection
// threshold is NOT wasteful; both conditions are required.
func TestScanDatabaseRequiresBothThresholds(t *testing.T) {
	tests := []struct {
		name         string
		cpu          float64
		conns        float64
		wantWasteful bool
	}{
		{"idle on both", 2.0, 1.0, true},
		{"cpu idle but serving connections", 2.0, 12.0, false},
		{"busy cpu with few connections", 40.0, 1.0, false},
		{"busy on both", 40.0, 12.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
				model.ResourceTypeDatabaseInstance: {{
					ResourceID: "prod-db",
					Type:       model.ResourceTypeDatabaseInstance,
					SizeClass:  "db.t3.medium",
					State:      model.StateAvailable,
				}},
			}}
			tel := &fakeTelemetry{averages: map[string]map[string]float64{
				"prod-db": {model.MetricCPUPercent: tt.cpu, model.MetricConnectionCount: tt.conns},
			}}

			report, err := newScanner(inv, tel).Scan(context.Background(), ScanRequest{
				ResourceType:        model.ResourceTypeDatabaseInstance,
				CPUThreshold:        10.0,
				ConnectionThreshold: 5.0,
			})
			if err != nil {
				t.Fatalf("Scan returned error: %v", err)
			}
			if got := report.Findings[0].Wasteful; got != tt.wantWasteful {
				t.Errorf("wasteful = %v, want %v (cpu %v, conns %v)", got, tt.wantWasteful, tt.cpu, tt.conns)
			}
		})
	}
}

// An available volume is wasteful and needs no telemetry at all
func TestScanUnattachedVolumeNoTelemetry(t *testing.T) {
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeBlockVolume: {{
			ResourceID: "vol-1",
			Type:       model.ResourceTypeBlockVolume,
			SizeClass:  "gp2",
			State:      model.StateAvailable,
			SizeGB:     100,
		}},
	}}
	tel := &fakeTelemetry{}

	report, err := newScanner(inv, tel).Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeBlockVolume})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if !report.Findings[0].Wasteful {
		t.Error("available volume not classified wasteful")
	}
	if tel.calls != 0 {
		t.Errorf("volume scan made %d telemetry calls, want 0", tel.calls)
	}
	if report.Findings[0].EstimatedMonthlyCost != 10.0 {
		t.Errorf("gp2 100GB cost = %v, want 10.0", report.Findings[0].EstimatedMonthlyCost)
	}
}

func TestScanStaticIPs(t *testing.T) {
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeStaticIP: {
			{ResourceID: "eipalloc-1", Type: model.ResourceTypeStaticIP, State: model.StateUnassociated},
			{ResourceID: "eipalloc-2", Type: model.ResourceTypeStaticIP, State: model.StateAssociated},
		},
	}}

	report, err := newScanner(inv, &fakeTelemetry{}).Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeStaticIP})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if !report.Findings[0].Wasteful || report.Findings[1].Wasteful {
		t.Errorf("IP classification = (%v, %v), want (true, false)",
			report.Findings[0].Wasteful, report.Findings[1].Wasteful)
	}
	if report.WastefulCount != 1 {
		t.Errorf("wasteful count = %d, want 1", report.WastefulCount)
	}
}

// Snapshot classification cross-references the current volume inventory
func TestScanOrphanedSnapshots(t *testing.T) {
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeSnapshot: {
			{ResourceID: "snap-live", Type: model.ResourceTypeSnapshot, SourceID: "vol-alive", SizeGB: 40},
			{ResourceID: "snap-orphan", Type: model.ResourceTypeSnapshot, SourceID: "vol-gone", SizeGB: 40},
		},
		model.ResourceTypeBlockVolume: {
			{ResourceID: "vol-alive", Type: model.ResourceTypeBlockVolume, SizeClass: "gp2", State: "in-use"},
		},
	}}

	report, err := newScanner(inv, &fakeTelemetry{}).Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeSnapshot})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if report.Findings[0].Wasteful {
		t.Error("snapshot with live source volume classified wasteful")
	}
	if !report.Findings[1].Wasteful {
		t.Error("snapshot with missing source volume not classified wasteful")
	}

	// Both the snapshot and the cross-reference volume inventory ran
	want := []model.ResourceType{model.ResourceTypeSnapshot, model.ResourceTypeBlockVolume}
	if !reflect.DeepEqual(inv.calls, want) {
		t.Errorf("inventory calls = %v, want %v", inv.calls, want)
	}

	// With no explicit filter the snapshot inventory is limited to
	// completed snapshots; the volume cross-reference stays unfiltered.
	if !reflect.DeepEqual(inv.filters[0], []string{model.StateCompleted}) {
		t.Errorf("snapshot state filter = %v, want [%s]", inv.filters[0], model.StateCompleted)
	}
	if inv.filters[1] != nil {
		t.Errorf("volume cross-reference filter = %v, want none", inv.filters[1])
	}
}

// An explicit state filter on a snapshot scan is passed through untouched
func TestScanSnapshotExplicitStateFilter(t *testing.T) {
	inv := &fakeInventory{}

	_, err := newScanner(inv, &fakeTelemetry{}).Scan(context.Background(), ScanRequest{
		ResourceType: model.ResourceTypeSnapshot,
		StateFilter:  []string{"error"},
	})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if !reflect.DeepEqual(inv.filters[0], []string{"error"}) {
		t.Errorf("snapshot state filter = %v, want [error]", inv.filters[0])
	}
}

// An unsupported resource type fails with no partial report
func TestScanUnsupportedResourceType(t *testing.T) {
	report, err := newScanner(&fakeInventory{}, &fakeTelemetry{}).Scan(context.Background(), ScanRequest{ResourceType: "unsupported-type"})
	if err == nil {
		t.Fatal("Scan accepted unsupported resource type")
	}
	if !errors.IsType(err, errors.TypeUnsupportedResource) {
		t.Errorf("error = %v, want UNSUPPORTED_RESOURCE_TYPE", err)
	}
	if report != nil {
		t.Errorf("got partial report %+v, want nil", report)
	}
}

func TestScanRejectsNegativeWindow(t *testing.T) {
	_, err := newScanner(&fakeInventory{}, &fakeTelemetry{}).Scan(context.Background(), ScanRequest{
		ResourceType: model.ResourceTypeComputeInstance,
		WindowDays:   -7,
	})
	if err == nil {
		t.Fatal("Scan accepted negative window")
	}
	if !errors.IsType(err, errors.TypeInvalidWindow) {
		t.Errorf("error = %v, want INVALID_WINDOW", err)
	}
}

func TestScanInventoryFailureIsFatal(t *testing.T) {
	inv := &fakeInventory{err: errors.New(errors.TypeInventoryUnavailable, "describe instances failed")}

	report, err := newScanner(inv, &fakeTelemetry{}).Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeComputeInstance})
	if err == nil {
		t.Fatal("Scan swallowed inventory failure")
	}
	if !errors.IsType(err, errors.TypeInventoryUnavailable) {
		t.Errorf("error = %v, want INVENTORY_UNAVAILABLE", err)
	}
	if report != nil {
		t.Errorf("got partial report %+v, want nil", report)
	}
}

// One resource's telemetry failure is contained to that resource;
// every collected resource still appears in the findings.
func TestScanTelemetryFailureIsolated(t *testing.T) {
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeComputeInstance: {
			instance("i-1", "t3.small", model.StateRunning),
			instance("i-2", "t3.small", model.StateRunning),
			instance("i-3", "t3.small", model.StateRunning),
		},
	}}
	tel := &fakeTelemetry{
		averages: map[string]map[string]float64{
			"i-1": {model.MetricCPUPercent: 1.5},
			"i-3": {model.MetricCPUPercent: 92.0},
		},
		failFor: map[string]bool{"i-2": true},
	}

	report, err := newScanner(inv, tel).Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeComputeInstance})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if len(report.Findings) != 3 || report.TotalResources != 3 {
		t.Fatalf("got %d findings (total %d), want 3", len(report.Findings), report.TotalResources)
	}

	if !report.Findings[0].Wasteful {
		t.Error("idle i-1 not classified wasteful")
	}
	second := report.Findings[1]
	if second.Wasteful {
		t.Error("i-2 with failed telemetry classified wasteful")
	}
	if second.Reason != model.ReasonUtilizationUnknown {
		t.Errorf("i-2 reason = %q, want %q", second.Reason, model.ReasonUtilizationUnknown)
	}
	if second.Metrics != nil {
		t.Errorf("i-2 metrics = %v, want none after failed telemetry", second.Metrics)
	}
	if second.EstimatedMonthlyCost <= 0 {
		t.Errorf("i-2 cost = %v, want positive", second.EstimatedMonthlyCost)
	}
	if report.Findings[2].Wasteful {
		t.Error("busy i-3 classified wasteful")
	}
}

// Zero datapoints mean average 0.0, which classifies as idle
func TestScanSilentResourceClassifiedIdle(t *testing.T) {
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeComputeInstance: {instance("i-silent", "c5.large", model.StateRunning)},
	}}
	// no averages registered: sampler returns 0.0 for every metric
	tel := &fakeTelemetry{}

	report, err := newScanner(inv, tel).Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeComputeInstance})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if !report.Findings[0].Wasteful {
		t.Error("resource with zero telemetry not classified wasteful")
	}
}

// The report content is identical whether telemetry runs sequentially
// or through the bounded worker pool.
func TestScanDeterministicUnderConcurrency(t *testing.T) {
	var descriptors []model.ResourceDescriptor
	averages := make(map[string]map[string]float64)
	ids := []string{"i-a", "i-b", "i-c", "i-d", "i-e", "i-f", "i-g", "i-h"}
	for n, id := range ids {
		descriptors = append(descriptors, instance(id, "t3.micro", model.StateRunning))
		averages[id] = map[string]float64{model.MetricCPUPercent: float64(n * 3)}
	}
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeComputeInstance: descriptors,
	}}

	run := func(concurrency int) *model.ScanReport {
		t.Helper()
		report, err := newScanner(inv, &fakeTelemetry{averages: averages}).Scan(context.Background(), ScanRequest{
			ResourceType: model.ResourceTypeComputeInstance,
			Concurrency:  concurrency,
		})
		if err != nil {
			t.Fatalf("Scan(concurrency=%d) returned error: %v", concurrency, err)
		}
		return report
	}

	sequential := run(1)
	concurrent := run(4)

	if !reflect.DeepEqual(sequential, concurrent) {
		t.Errorf("concurrent report differs from sequential:\nsequential: %+v\nconcurrent: %+v", sequential, concurrent)
	}
}

// Immediate re-scan of an unchanged environment yields an identical report
func TestScanIdempotent(t *testing.T) {
	inv := &fakeInventory{resources: map[model.ResourceType][]model.ResourceDescriptor{
		model.ResourceTypeComputeInstance: {
			instance("i-1", "t3.micro", model.StateRunning),
			instance("i-2", "m5.large", model.StateRunning),
		},
	}}
	tel := &fakeTelemetry{averages: map[string]map[string]float64{
		"i-1": {model.MetricCPUPercent: 4.0},
		"i-2": {model.MetricCPUPercent: 60.0},
	}}
	svc := newScanner(inv, tel)

	first, err := svc.Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeComputeInstance})
	if err != nil {
		t.Fatalf("first Scan returned error: %v", err)
	}
	second, err := svc.Scan(context.Background(), ScanRequest{ResourceType: model.ResourceTypeComputeInstance})
	if err != nil {
		t.Fatalf("second Scan returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scans differ:\nfirst: %+v\nsecond: %+v", first, second)
	}
}
