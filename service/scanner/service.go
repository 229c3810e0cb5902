// Package scanner classifies cloud resources as wasteful and estimates
// what they cost per month. One scan is one pass: inventory first, then
// one telemetry fetch per (resource, metric), then in-memory
// classification. Inventory failures abort the scan; telemetry failures
// are contained to the resource they hit.
package scanner

import (
	"context"
	"fmt"
	"sync"

	"github.com/elC0mpa/finops-doctor/internal/errors"
	"github.com/elC0mpa/finops-doctor/internal/logging"
	"github.com/elC0mpa/finops-doctor/model"
	"github.com/elC0mpa/finops-doctor/pricing"
	"github.com/elC0mpa/finops-doctor/service"
)

func NewService(inventory service.InventoryService, telemetry service.TelemetryService, prices *pricing.Pricebook) *scanService {
	if prices == nil {
		prices = pricing.Default()
	}
	return &scanService{
		inventory: inventory,
		telemetry: telemetry,
		prices:    prices,
	}
}

// Scan implements ScanService. Repeated calls against an unchanged
// environment produce identical reports; no state survives the call.
func (s *scanService) Scan(ctx context.Context, req ScanRequest) (*model.ScanReport, error) {
	if !req.ResourceType.Valid() {
		return nil, errors.Newf(errors.TypeUnsupportedResource, "unsupported resource type %q", req.ResourceType)
	}
	if req.WindowDays < 0 {
		return nil, errors.Newf(errors.TypeInvalidWindow, "window must be >= 1 day, got %d", req.WindowDays)
	}
	applyDefaults(&req)

	stateFilter := req.StateFilter
	if req.ResourceType == model.ResourceTypeSnapshot && len(stateFilter) == 0 {
		// In-progress snapshots are transient; only completed ones are
		// candidates for orphan classification.
		stateFilter = []string{model.StateCompleted}
	}

	descriptors, err := s.inventory.ListResources(ctx, req.ResourceType, stateFilter)
	if err != nil {
		return nil, err
	}

	// Snapshot classification cross-references the live volume set; this
	// second inventory call is as fatal as the first.
	var liveVolumes map[string]bool
	if req.ResourceType == model.ResourceTypeSnapshot {
		volumes, err := s.inventory.ListResources(ctx, model.ResourceTypeBlockVolume, nil)
		if err != nil {
			return nil, err
		}
		liveVolumes = make(map[string]bool, len(volumes))
		for _, v := range volumes {
			liveVolumes[v.ResourceID] = true
		}
	}

	samples := s.sampleAll(ctx, descriptors, req)

	report := &model.ScanReport{
		ResourceType:   req.ResourceType,
		TotalResources: len(descriptors),
		Findings:       make([]model.WasteFinding, 0, len(descriptors)),
	}

	for i, resource := range descriptors {
		finding := s.classify(resource, samples[i], liveVolumes, req)
		report.Findings = append(report.Findings, finding)
		if finding.Wasteful {
			report.WastefulCount++
			report.TotalEstimatedMonthlyCost += finding.EstimatedMonthlyCost
		}
	}

	logging.Sugar.Infow("scan complete",
		"resource_type", req.ResourceType,
		"total", report.TotalResources,
		"wasteful", report.WastefulCount,
		"estimated_monthly_cost", report.TotalEstimatedMonthlyCost,
	)

	return report, nil
}

func applyDefaults(req *ScanRequest) {
	if req.CPUThreshold == 0 {
		req.CPUThreshold = DefaultCPUThreshold
	}
	if req.ConnectionThreshold == 0 {
		req.ConnectionThreshold = DefaultConnectionThreshold
	}
	if req.WindowDays == 0 {
		req.WindowDays = DefaultWindowDays
	}
	if req.Concurrency < 1 {
		req.Concurrency = 1
	}
}

// resourceSamples holds the reduced metrics for one resource. failed
// marks resources whose telemetry fetch errored; they are reported as
// "utilization unknown" instead of being dropped.
type resourceSamples struct {
	averages map[string]float64
	failed   bool
}

func requiredMetrics(resourceType model.ResourceType) []string {
	switch resourceType {
	case model.ResourceTypeComputeInstance:
		return []string{model.MetricCPUPercent, model.MetricNetworkInBytes, model.MetricNetworkOutBytes}
	case model.ResourceTypeDatabaseInstance:
		return []string{model.MetricCPUPercent, model.MetricConnectionCount}
	}
	return nil
}

// sampleAll fetches every required (resource, metric) pair. Results are
// written to an index-addressed slice so the report content does not
// depend on goroutine completion order, and one resource's failure
// never cancels its siblings.
func (s *scanService) sampleAll(ctx context.Context, descriptors []model.ResourceDescriptor, req ScanRequest) []resourceSamples {
	results := make([]resourceSamples, len(descriptors))

	metrics := requiredMetrics(req.ResourceType)
	if len(metrics) == 0 {
		return results
	}

	sem := make(chan struct{}, req.Concurrency)
	var wg sync.WaitGroup

	for i := range descriptors {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.sampleResource(ctx, descriptors[i], metrics, req)
		}(i)
	}

	wg.Wait()
	return results
}

func (s *scanService) sampleResource(ctx context.Context, resource model.ResourceDescriptor, metrics []string, req ScanRequest) resourceSamples {
	result := resourceSamples{averages: make(map[string]float64, len(metrics))}

	for _, metric := range metrics {
		callCtx := ctx
		if req.TelemetryTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, req.TelemetryTimeout)
			defer cancel()
		}

		sample, err := s.telemetry.SampleUtilization(callCtx, resource, metric, req.WindowDays)
		if err != nil {
			logging.Sugar.Warnw("telemetry unavailable",
				"resource_id", resource.ResourceID,
				"metric", metric,
				"error", err,
			)
			result.failed = true
			return result
		}

		result.averages[sample.Metric] = sample.Average
	}

	return result
}

func (s *scanService) classify(resource model.ResourceDescriptor, samples resourceSamples, liveVolumes map[string]bool, req ScanRequest) model.WasteFinding {
	finding := model.WasteFinding{
		Resource:             resource,
		EstimatedMonthlyCost: s.prices.EstimateMonthlyCost(resource),
	}

	if resource.Type.SupportsTelemetry() && samples.failed {
		finding.Reason = model.ReasonUtilizationUnknown
		return finding
	}
	if len(samples.averages) > 0 {
		finding.Metrics = samples.averages
	}

	switch resource.Type {
	case model.ResourceTypeComputeInstance:
		cpu := samples.averages[model.MetricCPUPercent]
		finding.Wasteful = cpu < req.CPUThreshold
		finding.Reason = fmt.Sprintf("CPU utilization %.1f%% over %d days", cpu, req.WindowDays)

	case model.ResourceTypeDatabaseInstance:
		cpu := samples.averages[model.MetricCPUPercent]
		conns := samples.averages[model.MetricConnectionCount]
		// Both conditions required: a database can be CPU-idle while
		// still serving connections.
		finding.Wasteful = cpu < req.CPUThreshold && conns < req.ConnectionThreshold
		finding.Reason = fmt.Sprintf("CPU utilization %.1f%%, %.1f avg connections over %d days", cpu, conns, req.WindowDays)

	case model.ResourceTypeBlockVolume:
		if resource.State == model.StateAvailable {
			finding.Wasteful = true
			finding.Reason = "volume has no attachments"
		} else {
			finding.Reason = fmt.Sprintf("volume %s", resource.State)
		}

	case model.ResourceTypeStaticIP:
		if resource.State == model.StateUnassociated {
			finding.Wasteful = true
			finding.Reason = "address not associated with any resource"
		} else {
			finding.Reason = "address in use"
		}

	case model.ResourceTypeSnapshot:
		switch {
		case resource.SourceID == "":
			finding.Wasteful = true
			finding.Reason = "source volume unknown"
		case !liveVolumes[resource.SourceID]:
			finding.Wasteful = true
			finding.Reason = fmt.Sprintf("source volume %s no longer exists", resource.SourceID)
		default:
			finding.Reason = fmt.Sprintf("source volume %s present", resource.SourceID)
		}
	}

	return finding
}
