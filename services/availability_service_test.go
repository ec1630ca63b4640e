package services

import (
	"testing"

	"github.com/brightpath/tutor_match/apperrors"
	"github.com/brightpath/tutor_match/models"
)

func TestValidateSlotInput(t *testing.T) {
	tests := []struct {
		name     string
		in       SlotInput
		wantCode string
	}{
		{"valid slot", SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}, ""},
		{"valid with recurrence", SlotInput{DayOfWeek: 5, StartTime: "14:00", EndTime: "15:30", Recurrence: "biweekly"}, ""},
		{"day too large", SlotInput{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}, apperrors.CodeValidation},
		{"negative day", SlotInput{DayOfWeek: -1, StartTime: "09:00", EndTime: "10:00"}, apperrors.CodeValidation},
		{"missing start time", SlotInput{DayOfWeek: 1, EndTime: "10:00"}, apperrors.CodeValidation},
		{"missing end time", SlotInput{DayOfWeek: 1, StartTime: "09:00"}, apperrors.CodeValidation},
		{"malformed start time", SlotInput{DayOfWeek: 1, StartTime: "25:00", EndTime: "10:00"}, apperrors.CodeValidation},
		{"end before start", SlotInput{DayOfWeek: 1, StartTime: "10:00", EndTime: "09:00"}, apperrors.CodeValidation},
		{"zero length", SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}, apperrors.CodeValidation},
		{"invalid recurrence", SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", Recurrence: "daily"}, apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startMin, endMin, err := validateSlotInput(tt.in)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("validateSlotInput() unexpected error: %v", err)
				}
				if endMin <= startMin {
					t.Fatalf("validateSlotInput() returned inverted window %d-%d", startMin, endMin)
				}
				return
			}
			if err == nil {
				t.Fatalf("validateSlotInput() expected %s error, got nil", tt.wantCode)
			}
			if got := apperrors.Code(err); got != tt.wantCode {
				t.Fatalf("validateSlotInput() error code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestCheckSlotOverlap(t *testing.T) {
	existing := []models.AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "14:00", IsAvailable: false},
		{DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	}

	tests := []struct {
		name                 string
		dayOfWeek            int
		startTime, endTime   string
		wantConflict         bool
	}{
		{"overlapping window", 1, "09:30", "10:30", true},
		{"exact duplicate", 1, "09:00", "10:00", true},
		{"adjacent after", 1, "10:00", "11:00", false},
		{"adjacent before", 1, "08:00", "09:00", false},
		{"different day", 2, "09:30", "10:30", false},
		{"overlaps inactive slot", 1, "13:30", "14:30", false},
		{"inside wide slot", 3, "10:00", "11:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startMin := mustMinutes(t, tt.startTime)
			endMin := mustMinutes(t, tt.endTime)
			err := checkSlotOverlap(tt.dayOfWeek, startMin, endMin, tt.startTime, tt.endTime, existing)
			if tt.wantConflict {
				if err == nil {
					t.Fatal("checkSlotOverlap() expected conflict, got nil")
				}
				if !apperrors.Is(err, apperrors.CodeConflict) {
					t.Fatalf("checkSlotOverlap() error code = %s, want %s", apperrors.Code(err), apperrors.CodeConflict)
				}
				return
			}
			if err != nil {
				t.Fatalf("checkSlotOverlap() unexpected error: %v", err)
			}
		})
	}
}

func TestCheckSlotOverlapWithinBatch(t *testing.T) {
	// Simulates the accepted-so-far list growing during a batch: the second
	// item of the batch must be rejected against the first.
	first := models.AvailabilitySlot{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", IsAvailable: true}
	accepted := []models.AvailabilitySlot{first}

	err := checkSlotOverlap(2, 570, 630, "09:30", "10:30", accepted)
	if err == nil || !apperrors.Is(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict against earlier batch item, got %v", err)
	}

	if err := checkSlotOverlap(2, 600, 660, "10:00", "11:00", accepted); err != nil {
		t.Fatalf("adjacent batch item should be accepted, got %v", err)
	}
}
