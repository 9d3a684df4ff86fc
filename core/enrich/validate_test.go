package enrich

import (
	"strings"
	"testing"

	"github.com/lastmile-sim/courierenv/core/model"
)

func TestValidateWavesOverlap(t *testing.T) {
	waves := []model.CourierWave{
		{CourierID: "c1", WaveID: 1, WaveStartTime: ts(1000), WaveEndTime: ts(2000), Dt: "d"},
		{CourierID: "c1", WaveID: 2, WaveStartTime: ts(1500), WaveEndTime: ts(3000), Dt: "d"},
		{CourierID: "c1", WaveID: 3, WaveStartTime: ts(4000), WaveEndTime: ts(5000), Dt: "d"},
		{CourierID: "c2", WaveID: 4, WaveStartTime: ts(1500), WaveEndTime: ts(3000), Dt: "d"},
	}
	findings := ValidateWaves(waves)
	if len(findings) != 1 {
		t.Fatalf("got %d findings: %v", len(findings), findings)
	}
	if findings[0].Kind != "overlapping_waves" || findings[0].CourierID != "c1" {
		t.Errorf("finding = %+v", findings[0])
	}
}

func TestValidateWavesContainingWave(t *testing.T) {
	// One wave spans the whole day and swallows two later ones; both
	// containments must surface, not just the first.
	waves := []model.CourierWave{
		{CourierID: "c1", WaveID: 1, WaveStartTime: ts(0), WaveEndTime: ts(10000), Dt: "d"},
		{CourierID: "c1", WaveID: 2, WaveStartTime: ts(100), WaveEndTime: ts(200), Dt: "d"},
		{CourierID: "c1", WaveID: 3, WaveStartTime: ts(300), WaveEndTime: ts(400), Dt: "d"},
	}
	findings := ValidateWaves(waves)
	if len(findings) != 2 {
		t.Fatalf("got %d findings: %v", len(findings), findings)
	}
	for i, wantWave := range []string{"waves 1 and 2", "waves 1 and 3"} {
		if findings[i].Kind != "overlapping_waves" {
			t.Errorf("finding %d kind = %q", i, findings[i].Kind)
		}
		if !strings.Contains(findings[i].Detail, wantWave) {
			t.Errorf("finding %d detail = %q, want mention of %q", i, findings[i].Detail, wantWave)
		}
	}
}

func TestValidateWavesInverted(t *testing.T) {
	waves := []model.CourierWave{
		{CourierID: "c1", WaveID: 1, WaveStartTime: ts(2000), WaveEndTime: ts(1000), Dt: "d"},
	}
	findings := ValidateWaves(waves)
	if len(findings) != 1 || findings[0].Kind != "inverted_wave" {
		t.Fatalf("findings = %v", findings)
	}
}

func TestValidateWavesClean(t *testing.T) {
	waves := []model.CourierWave{
		{CourierID: "c1", WaveID: 1, WaveStartTime: ts(1000), WaveEndTime: ts(2000), Dt: "d"},
		{CourierID: "c1", WaveID: 2, WaveStartTime: ts(2001), WaveEndTime: ts(3000), Dt: "d"},
	}
	if findings := ValidateWaves(waves); len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}
}

func TestCrossCheckAssignments(t *testing.T) {
	waybills := []model.Waybill{{OrderID: "A"}, {OrderID: "B"}}
	assignments := []model.Assignment{
		{CourierID: "c1", CourierWaybills: []string{"A", "B"}},
		{CourierID: "c2", CourierWaybills: []string{"Z"}},
	}
	findings := CrossCheckAssignments(assignments, waybills)
	if len(findings) != 1 {
		t.Fatalf("got %d findings: %v", len(findings), findings)
	}
	if findings[0].OrderID != "Z" || findings[0].Kind != "unknown_assignment_order" {
		t.Errorf("finding = %+v", findings[0])
	}
}
