package reservation

import (
	"testing"
	"time"
)

func TestReservation_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	existing := Reservation{
		VehicleID: 1,
		StartTime: base,                // 09:00
		EndTime:   base.Add(time.Hour), // 10:00
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "Identical interval",
			start: base,
			end:   base.Add(time.Hour),
			want:  true,
		},
		{
			name:  "Candidate fully inside existing",
			start: base.Add(15 * time.Minute),
			end:   base.Add(45 * time.Minute),
			want:  true,
		},
		{
			name:  "Candidate fully contains existing",
			start: base.Add(-time.Hour),
			end:   base.Add(2 * time.Hour),
			want:  true,
		},
		{
			name:  "Partial overlap at the start",
			start: base.Add(-30 * time.Minute),
			end:   base.Add(30 * time.Minute),
			want:  true,
		},
		{
			name:  "Partial overlap at the end",
			start: base.Add(30 * time.Minute),
			end:   base.Add(90 * time.Minute),
			want:  true,
		},
		{
			name:  "Back-to-back: candidate starts when existing ends",
			start: base.Add(time.Hour),
			end:   base.Add(2 * time.Hour),
			want:  false,
		},
		{
			name:  "Back-to-back: candidate ends when existing starts",
			start: base.Add(-time.Hour),
			end:   base,
			want:  false,
		},
		{
			name:  "Candidate entirely before existing",
			start: base.Add(-2 * time.Hour),
			end:   base.Add(-time.Hour),
			want:  false,
		},
		{
			name:  "Candidate entirely after existing",
			start: base.Add(2 * time.Hour),
			end:   base.Add(3 * time.Hour),
			want:  false,
		},
		{
			name:  "One nanosecond of overlap at the end",
			start: base.Add(time.Hour).Add(-time.Nanosecond),
			end:   base.Add(2 * time.Hour),
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := existing.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestPatch_TouchesInterval(t *testing.T) {
	vehicleId := 2
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	notes := "picking up spare parts"

	tests := []struct {
		name  string
		patch Patch
		want  bool
	}{
		{name: "Empty patch", patch: Patch{}, want: false},
		{name: "Notes only", patch: Patch{Notes: &notes}, want: false},
		{name: "Vehicle change", patch: Patch{VehicleID: &vehicleId}, want: true},
		{name: "Start change", patch: Patch{StartTime: &now}, want: true},
		{name: "End change", patch: Patch{EndTime: &now}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.patch.TouchesInterval(); got != tt.want {
				t.Errorf("TouchesInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	existing := Reservation{
		ID:        7,
		VehicleID: 1,
		UserName:  "anna",
		Reason:    "site visit",
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		Notes:     "",
		CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	newEnd := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	newNotes := "extended by one hour"
	merged := Patch{EndTime: &newEnd, Notes: &newNotes}.Apply(existing)

	if merged.EndTime != newEnd {
		t.Errorf("EndTime = %v, want %v", merged.EndTime, newEnd)
	}
	if merged.Notes != newNotes {
		t.Errorf("Notes = %q, want %q", merged.Notes, newNotes)
	}
	if merged.ID != existing.ID || merged.VehicleID != existing.VehicleID ||
		merged.UserName != existing.UserName || merged.Reason != existing.Reason ||
		merged.StartTime != existing.StartTime || merged.CreatedAt != existing.CreatedAt {
		t.Errorf("Apply() changed untouched fields: got %+v", merged)
	}
}
