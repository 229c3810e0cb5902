package response

// AccountInfo represents cloud account identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// ServiceCost represents cost for a single service
type ServiceCost struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CostInfo represents cost data for a time period
type CostInfo struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Services  []ServiceCost `json:"services"`
	Total     float64       `json:"total"`
	Currency  string        `json:"currency"`
}

// CostComparison represents cost comparison between two periods
type CostComparison struct {
	CurrentMonth  CostInfo `json:"current_month"`
	LastMonth     CostInfo `json:"last_month"`
	Difference    float64  `json:"difference"`
	PercentChange float64  `json:"percent_change"`
}

// TrendSummary provides summary statistics for cost trend
type TrendSummary struct {
	TotalSpend     float64 `json:"total_spend_6_months"`
	AverageMonthly float64 `json:"average_monthly"`
	HighestMonth   string  `json:"highest_month"`
	HighestAmount  float64 `json:"highest_amount"`
	LowestMonth    string  `json:"lowest_month"`
	LowestAmount   float64 `json:"lowest_amount"`
}

// CostTrend represents 6-month cost trend with summary
type CostTrend struct {
	Months  []CostInfo   `json:"months"`
	Summary TrendSummary `json:"summary"`
}

// CostForecast represents projected spend for an upcoming period
type CostForecast struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Amount     float64 `json:"amount"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
	Currency   string  `json:"currency"`
}

// CostAnomaly represents one provider-detected spend anomaly
type CostAnomaly struct {
	AnomalyID   string  `json:"anomaly_id"`
	Service     string  `json:"service"`
	TotalImpact float64 `json:"total_impact"`
	MaxImpact   float64 `json:"max_impact"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

// WasteFinding is the classifier verdict for one resource
type WasteFinding struct {
	ResourceID string            `json:"resource_id"`
	Name       string            `json:"name,omitempty"`
	SizeClass  string            `json:"size_class,omitempty"`
	State      string            `json:"state,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
	Wasteful   bool              `json:"wasteful"`
	Reason     string            `json:"reason"`
	// Metrics carries the sampled utilization averages for resource
	// types with telemetry, keyed by metric name
	Metrics              map[string]float64 `json:"metrics,omitempty"`
	EstimatedMonthlyCost float64            `json:"estimated_monthly_cost"`
}

// ScanReport represents one waste scan over a single resource type
type ScanReport struct {
	ResourceType              string         `json:"resource_type"`
	TotalResources            int            `json:"total_resources"`
	WastefulCount             int            `json:"wasteful_count"`
	TotalEstimatedMonthlyCost float64        `json:"total_estimated_monthly_cost"`
	Findings                  []WasteFinding `json:"findings"`
}

// OrphanedLoadBalancer represents a load balancer with no target group
type OrphanedLoadBalancer struct {
	Name string `json:"name"`
	Type string `json:"type"`
	ARN  string `json:"arn"`
}

// WasteSummary aggregates scan reports across every resource type
type WasteSummary struct {
	Provider                  string                 `json:"provider"`
	AccountID                 string                 `json:"account_id"`
	Reports                   []ScanReport           `json:"reports"`
	OrphanedLoadBalancers     []OrphanedLoadBalancer `json:"orphaned_load_balancers"`
	TotalEstimatedMonthlyCost float64                `json:"total_estimated_monthly_cost"`
}
