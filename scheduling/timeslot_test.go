package scheduling

import (
	"testing"
	"time"

	"github.com/brightpath/tutor_match/apperrors"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"9:05", 545, false},
		{"23:59", 1439, false},
		{"14:30:15", 870, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"1230", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
		{"12:5", 0, true},
	}

	for _, tt := range tests {
		got, err := ToMinutes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ToMinutes(%q) expected error, got %d", tt.input, got)
			} else if !apperrors.Is(err, apperrors.CodeValidation) {
				t.Errorf("ToMinutes(%q) error code = %s, want %s", tt.input, apperrors.Code(err), apperrors.CodeValidation)
			}
			continue
		}
		if err != nil {
			t.Errorf("ToMinutes(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"partial overlap", 540, 600, 570, 630, true},
		{"contained", 540, 600, 550, 590, true},
		{"identical", 540, 600, 540, 600, true},
		{"adjacent end-to-start", 540, 600, 600, 660, false},
		{"adjacent start-to-end", 600, 660, 540, 600, false},
		{"disjoint", 540, 600, 700, 760, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v", tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	windows := [][2]int{{0, 60}, {30, 90}, {60, 120}, {90, 150}, {0, 1440}, {540, 600}}
	for _, a := range windows {
		for _, b := range windows {
			ab := Overlaps(a[0], a[1], b[0], b[1])
			ba := Overlaps(b[0], b[1], a[0], a[1])
			if ab != ba {
				t.Errorf("Overlaps not symmetric for %v and %v: %v vs %v", a, b, ab, ba)
			}
		}
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name                                       string
		outerStart, outerEnd, innerStart, innerEnd int
		want                                       bool
	}{
		{"strictly inside", 540, 600, 555, 585, true},
		{"exact match", 540, 600, 540, 600, true},
		{"shared start", 540, 600, 540, 570, true},
		{"shared end", 540, 600, 570, 600, true},
		{"starts before outer", 540, 600, 530, 570, false},
		{"ends after outer", 540, 600, 570, 610, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.outerStart, tt.outerEnd, tt.innerStart, tt.innerEnd); got != tt.want {
				t.Errorf("Contains(%d,%d,%d,%d) = %v, want %v", tt.outerStart, tt.outerEnd, tt.innerStart, tt.innerEnd, got, tt.want)
			}
		})
	}
}

func TestDayHelpers(t *testing.T) {
	// 2024-01-08 was a Monday.
	monday := time.Date(2024, 1, 8, 9, 15, 0, 0, time.UTC)
	if got := DayOfWeek(monday); got != 1 {
		t.Errorf("DayOfWeek(monday) = %d, want 1", got)
	}
	if got := MinuteOfDay(monday); got != 555 {
		t.Errorf("MinuteOfDay(09:15) = %d, want 555", got)
	}
	if got := DayName(0); got != "Sunday" {
		t.Errorf("DayName(0) = %q, want Sunday", got)
	}
	if got := DayName(6); got != "Saturday" {
		t.Errorf("DayName(6) = %q, want Saturday", got)
	}
	if got := DayName(7); got != "Unknown" {
		t.Errorf("DayName(7) = %q, want Unknown", got)
	}
	if ValidDayOfWeek(-1) || ValidDayOfWeek(7) {
		t.Error("ValidDayOfWeek accepted an out-of-range day")
	}
	if !ValidDayOfWeek(0) || !ValidDayOfWeek(6) {
		t.Error("ValidDayOfWeek rejected a boundary day")
	}
}
