package pricing

import (
	"testing"

	"github.com/elC0mpa/finops-doctor/model"
)

func TestEstimateMonthlyCost(t *testing.T) {
	pb := Default()

	tests := []struct {
		name     string
		resource model.ResourceDescriptor
		want     float64
	}{
		{
			name:     "t3 burstable instance",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeComputeInstance, SizeClass: "t3.micro"},
			want:     30.0,
		},
		{
			name:     "m5 general purpose instance",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeComputeInstance, SizeClass: "m5.2xlarge"},
			want:     70.0,
		},
		{
			name:     "unrecognized instance size falls back",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeComputeInstance, SizeClass: "x2gd.metal"},
			want:     DefaultComputeMonthly,
		},
		{
			name:     "db.r5 database class",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeDatabaseInstance, SizeClass: "db.r5.large"},
			want:     200.0,
		},
		{
			name:     "unrecognized database class falls back",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeDatabaseInstance, SizeClass: "db.x2g.large"},
			want:     DefaultDatabaseMonthly,
		},
		{
			name:     "gp2 volume priced per GB",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeBlockVolume, SizeClass: "gp2", SizeGB: 100},
			want:     10.0,
		},
		{
			name:     "unknown volume type uses default rate",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeBlockVolume, SizeClass: "io2", SizeGB: 50},
			want:     4.0,
		},
		{
			name:     "volume without size uses flat default",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeBlockVolume, SizeClass: "gp2"},
			want:     DefaultVolumeMonthly,
		},
		{
			name:     "snapshot priced per GB",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeSnapshot, SizeGB: 200},
			want:     10.0,
		},
		{
			name:     "snapshot without size uses flat default",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeSnapshot},
			want:     DefaultSnapshotMonthly,
		},
		{
			name:     "static IP flat rate",
			resource: model.ResourceDescriptor{Type: model.ResourceTypeStaticIP, SizeClass: "vpc"},
			want:     DefaultStaticIPMonthly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pb.EstimateMonthlyCost(tt.resource)
			if got != tt.want {
				t.Errorf("EstimateMonthlyCost(%v) = %v, want %v", tt.resource, got, tt.want)
			}
		})
	}
}

func TestEstimateNeverZero(t *testing.T) {
	pb := &Pricebook{} // empty table, all lookups miss

	for _, rt := range model.ScannableResourceTypes {
		r := model.ResourceDescriptor{Type: rt, SizeClass: "does-not-exist"}
		if got := pb.EstimateMonthlyCost(r); got <= 0 {
			t.Errorf("EstimateMonthlyCost(%s) = %v, want positive fallback", rt, got)
		}
	}
}
