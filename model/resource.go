package model

// ResourceType identifies the kind of cloud resource under evaluation
type ResourceType string

const (
	ResourceTypeComputeInstance  ResourceType = "compute-instance"
	ResourceTypeBlockVolume      ResourceType = "block-volume"
	ResourceTypeDatabaseInstance ResourceType = "database-instance"
	ResourceTypeStaticIP         ResourceType = "static-ip"
	ResourceTypeSnapshot         ResourceType = "snapshot"
)

// ScannableResourceTypes lists every resource type the scanner accepts,
// in the order the waste summary walks them.
var ScannableResourceTypes = []ResourceType{
	ResourceTypeComputeInstance,
	ResourceTypeBlockVolume,
	ResourceTypeDatabaseInstance,
	ResourceTypeStaticIP,
	ResourceTypeSnapshot,
}

// Valid reports whether rt is one of the supported resource types
func (rt ResourceType) Valid() bool {
	switch rt {
	case ResourceTypeComputeInstance, ResourceTypeBlockVolume,
		ResourceTypeDatabaseInstance, ResourceTypeStaticIP, ResourceTypeSnapshot:
		return true
	}
	return false
}

// SupportsTelemetry reports whether resources of this type emit
// utilization metrics worth sampling
func (rt ResourceType) SupportsTelemetry() bool {
	return rt == ResourceTypeComputeInstance || rt == ResourceTypeDatabaseInstance
}

// Well-known lifecycle states as normalized from provider responses.
// Volumes use "available" for unattached, addresses use "unassociated"
// when no association exists.
const (
	StateRunning      = "running"
	StateStopped      = "stopped"
	StateAvailable    = "available"
	StateAssociated   = "associated"
	StateUnassociated = "unassociated"
	StateCompleted    = "completed"
)

// ResourceDescriptor represents one cloud resource under evaluation.
// Descriptors are built fresh from provider API responses on every scan
// and are not mutated afterwards.
type ResourceDescriptor struct {
	ResourceID string
	Type       ResourceType
	// SizeClass is the provider size/type label (instance type, volume
	// type, DB instance class) used as the cost lookup key.
	SizeClass string
	State     string
	Tags      map[string]string

	// SizeGB is set for volumes and snapshots, 0 otherwise.
	SizeGB int32
	// SourceID links a snapshot to the volume it was taken from.
	SourceID string
	// StateReason carries the raw provider state transition reason,
	// e.g. "User initiated (2025-06-01 10:00:00 GMT)".
	StateReason string
}

// Name returns the Name tag, falling back to the resource ID
func (r ResourceDescriptor) Name() string {
	if name, ok := r.Tags["Name"]; ok && name != "" {
		return name
	}
	return r.ResourceID
}
