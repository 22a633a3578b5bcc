package services

import (
	"testing"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

func TestProjectCalendarFirstCycle(t *testing.T) {
	t.Parallel()

	cycles := []models.Cycle{{StartDate: dates.MustParse("2024-01-01"), Length: 28}}
	projection := ProjectCalendar(cycles, 28, 5)

	if projection.CycleLength != 28 {
		t.Fatalf("expected projection to report length 28, got %d", projection.CycleLength)
	}

	for _, day := range []string{"2024-01-29", "2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"} {
		marker, ok := projection.Markers[day]
		if !ok || !marker.IsProjectedPeriod {
			t.Fatalf("expected %s to be a projected period day, got %#v", day, marker)
		}
		if marker.IsFertile || marker.IsOvulationDay {
			t.Fatalf("expected period day %s not to be flagged fertile, got %#v", day, marker)
		}
	}
	if _, ok := projection.Markers["2024-02-03"]; ok {
		t.Fatal("expected projected period to stop after five days")
	}

	for _, day := range []string{"2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13", "2024-01-14", "2024-01-15", "2024-01-16"} {
		marker := projection.Markers[day]
		if !marker.IsFertile || marker.IsProjectedPeriod {
			t.Fatalf("expected %s to be fertile only, got %#v", day, marker)
		}
		if marker.IsOvulationDay != (day == "2024-01-15") {
			t.Fatalf("unexpected ovulation flag on %s: %#v", day, marker)
		}
	}
	for _, day := range []string{"2024-01-09", "2024-01-17"} {
		if _, ok := projection.Markers[day]; ok {
			t.Fatalf("expected %s to be outside the fertile window", day)
		}
	}
}

func TestProjectCalendarPeriodWinsOverlap(t *testing.T) {
	t.Parallel()

	cycles := []models.Cycle{{StartDate: dates.MustParse("2024-01-01"), Length: 21}}
	projection := ProjectCalendar(cycles, 21, 7)

	// second cycle's fertile window (01-24..01-30) overlaps the first projected period (01-22..01-28)
	for _, day := range []string{"2024-01-24", "2024-01-25", "2024-01-28"} {
		marker := projection.Markers[day]
		if !marker.IsProjectedPeriod || marker.IsFertile || marker.IsOvulationDay {
			t.Fatalf("expected %s to stay a projected period day, got %#v", day, marker)
		}
	}
	if marker := projection.Markers["2024-01-29"]; !marker.IsFertile || !marker.IsOvulationDay {
		t.Fatalf("expected 2024-01-29 to be the ovulation day, got %#v", marker)
	}
	if marker := projection.Markers["2024-01-30"]; !marker.IsFertile || marker.IsOvulationDay {
		t.Fatalf("expected 2024-01-30 to be fertile, got %#v", marker)
	}
}

func TestProjectCalendarHorizon(t *testing.T) {
	t.Parallel()

	anchor := dates.MustParse("2024-01-01")
	projection := ProjectCalendar([]models.Cycle{{StartDate: anchor, Length: 28}}, 28, 5)

	if marker := projection.Markers[anchor.AddDays(28*12).String()]; !marker.IsProjectedPeriod {
		t.Fatal("expected the twelfth cycle to be projected")
	}
	if _, ok := projection.Markers[anchor.AddDays(28*13).String()]; ok {
		t.Fatal("expected nothing beyond twelve cycles")
	}
	if len(projection.Markers) != 12*(5+7) {
		t.Fatalf("expected %d markers, got %d", 12*(5+7), len(projection.Markers))
	}
}

func TestProjectCalendarEmpty(t *testing.T) {
	t.Parallel()

	projection := ProjectCalendar(nil, 28, 5)
	if projection.Markers == nil || len(projection.Markers) != 0 {
		t.Fatalf("expected empty non-nil map, got %#v", projection.Markers)
	}
	if _, ok := projection.NextPeriodStart(dates.MustParse("2024-01-01")); ok {
		t.Fatal("expected no next period for an empty projection")
	}
}

func TestProjectionLookups(t *testing.T) {
	projection := ProjectCalendar([]models.Cycle{{StartDate: dates.MustParse("2024-01-01")}}, 28, 5)

	next, ok := projection.NextPeriodStart(dates.MustParse("2024-02-10"))
	if !ok || next.String() != "2024-02-26" {
		t.Fatalf("expected next period 2024-02-26, got %s (%v)", next, ok)
	}

	ovulation, ok := projection.NextOvulation(dates.MustParse("2024-01-16"))
	if !ok || ovulation.String() != "2024-02-12" {
		t.Fatalf("expected next ovulation 2024-02-12, got %s (%v)", ovulation, ok)
	}

	subset := projection.InRange(dates.MustParse("2024-01-28"), dates.MustParse("2024-01-30"))
	if len(subset) != 2 {
		t.Fatalf("expected two markers in range, got %#v", subset)
	}
}
