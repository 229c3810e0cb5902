package model

// ReasonUtilizationUnknown marks resources whose telemetry fetch failed.
// Such resources are kept in the report but never counted as waste.
const ReasonUtilizationUnknown = "utilization unknown"

// WasteFinding is the classifier verdict for one resource
type WasteFinding struct {
	Resource ResourceDescriptor
	Wasteful bool
	Reason   string
	// Metrics holds the sampled utilization averages keyed by metric
	// name. Nil for resource types without telemetry and for resources
	// whose fetch failed.
	Metrics map[string]float64
	// EstimatedMonthlyCost is always set, even for non-wasteful
	// findings, so downstream aggregation can sum without nil checks.
	EstimatedMonthlyCost float64
}

// ScanReport is the sole output of one waste scan. Findings preserve
// the collector's enumeration order and include non-wasteful resources
// for auditability.
type ScanReport struct {
	ResourceType              ResourceType
	TotalResources            int
	WastefulCount             int
	TotalEstimatedMonthlyCost float64
	Findings                  []WasteFinding
}

// OrphanedLoadBalancer is an ALB/NLB with no target group attachment.
// Load balancers sit outside the five-type scan enum and are reported
// separately.
type OrphanedLoadBalancer struct {
	Name string
	ARN  string
	Type string
}

// WasteSummary aggregates scan reports across every resource type
type WasteSummary struct {
	AccountID                 string
	Reports                   []ScanReport
	OrphanedLoadBalancers     []OrphanedLoadBalancer
	TotalEstimatedMonthlyCost float64
}
