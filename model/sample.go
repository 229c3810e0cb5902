package model

// Metric names understood by the utilization sampler
const (
	MetricCPUPercent      = "cpu_percent"
	MetricConnectionCount = "connection_count"
	MetricNetworkInBytes  = "network_in_bytes"
	MetricNetworkOutBytes = "network_out_bytes"
)

// UtilizationSample is one reduced metric for one resource over one
// lookback window. A window with zero datapoints yields Average 0.0,
// never NaN: a resource emitting no telemetry is treated the same as a
// resource confirmed idle.
type UtilizationSample struct {
	ResourceID string
	Metric     string
	WindowDays int
	Average    float64
}
