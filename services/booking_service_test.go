package services

import (
	"testing"
	"time"

	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/google/uuid"
)

func mustMinutes(t *testing.T, s string) int {
	t.Helper()
	min, err := scheduling.ToMinutes(s)
	if err != nil {
		t.Fatalf("ToMinutes(%q): %v", s, err)
	}
	return min
}

func TestMatchSlot(t *testing.T) {
	slots := []models.AvailabilitySlot{
		{ID: uuid.New(), StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
		{ID: uuid.New(), StartTime: "10:00", EndTime: "12:00", IsAvailable: true},
	}

	tests := []struct {
		name               string
		startTime, endTime string
		wantSlot           int // index into slots, -1 for no match
	}{
		{"inside first slot", "09:15", "09:45", 0},
		{"exactly first slot", "09:00", "10:00", 0},
		{"inside second slot", "10:30", "11:30", 1},
		{"spans two slots", "09:30", "10:30", -1},
		{"before all slots", "08:00", "08:30", -1},
		{"sticks out past end", "11:30", "12:30", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := matchSlot(slots, mustMinutes(t, tt.startTime), mustMinutes(t, tt.endTime))
			if err != nil {
				t.Fatalf("matchSlot() unexpected error: %v", err)
			}
			if tt.wantSlot == -1 {
				if matched != nil {
					t.Fatalf("matchSlot() = %s-%s, want no match", matched.StartTime, matched.EndTime)
				}
				return
			}
			if matched == nil {
				t.Fatal("matchSlot() = nil, want a match")
			}
			if matched.ID != slots[tt.wantSlot].ID {
				t.Fatalf("matchSlot() matched %s-%s, want slot %d", matched.StartTime, matched.EndTime, tt.wantSlot)
			}
		})
	}
}

func TestMatchSlotFirstWins(t *testing.T) {
	outer := models.AvailabilitySlot{ID: uuid.New(), StartTime: "08:00", EndTime: "18:00", IsAvailable: true}
	inner := models.AvailabilitySlot{ID: uuid.New(), StartTime: "09:00", EndTime: "10:00", IsAvailable: true}

	matched, err := matchSlot([]models.AvailabilitySlot{outer, inner}, 555, 585)
	if err != nil {
		t.Fatalf("matchSlot() unexpected error: %v", err)
	}
	if matched == nil || matched.ID != outer.ID {
		t.Fatal("matchSlot() should return the first containing slot in order")
	}
}

func TestConflictsWith(t *testing.T) {
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	at := func(hour, min int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}
	existing := &models.Booking{StartTime: at(9, 0), EndTime: at(10, 0)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"partial overlap", at(9, 15), at(9, 45), true},
		{"overlap trailing", at(9, 30), at(10, 30), true},
		{"identical window", at(9, 0), at(10, 0), true},
		{"request contains existing", at(8, 30), at(10, 30), true},
		{"adjacent after", at(10, 0), at(11, 0), false},
		{"adjacent before", at(8, 0), at(9, 0), false},
		{"disjoint", at(14, 0), at(15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := conflictsWith(existing, tt.start, tt.end); got != tt.want {
				t.Errorf("conflictsWith(%s-%s) = %v, want %v",
					tt.start.Format("15:04"), tt.end.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestFindConflict(t *testing.T) {
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	held := []models.Booking{
		{ID: uuid.New(), StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)},
		{ID: uuid.New(), StartTime: day.Add(13 * time.Hour), EndTime: day.Add(14 * time.Hour)},
	}

	if got := findConflict(held, day.Add(13*time.Hour+30*time.Minute), day.Add(14*time.Hour+30*time.Minute)); got == nil {
		t.Fatal("findConflict() = nil, want the 13:00 booking")
	} else if got.ID != held[1].ID {
		t.Fatal("findConflict() returned the wrong booking")
	}

	if got := findConflict(held, day.Add(10*time.Hour), day.Add(11*time.Hour)); got != nil {
		t.Fatal("findConflict() should allow a window adjacent to held bookings")
	}
}
