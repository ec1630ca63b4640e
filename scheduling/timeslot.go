// Package scheduling holds the pure booking/availability rules: wall-clock
// arithmetic, interval tests, the closed role and status enumerations and
// the booking transition table. Nothing in here touches the database.
package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/brightpath/tutor_match/apperrors"
)

var timePattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)(:[0-5]\d)?$`)

// ToMinutes converts an "HH:MM" or "HH:MM:SS" wall-clock string to minutes
// since midnight. Seconds are accepted and ignored.
func ToMinutes(s string) (int, error) {
	if !timePattern.MatchString(s) {
		return 0, apperrors.Validation(fmt.Sprintf("invalid time %q: format must be HH:MM", s))
	}
	parts := strings.Split(s, ":")
	hour, _ := strconv.Atoi(parts[0])
	min, _ := strconv.Atoi(parts[1])
	return hour*60 + min, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that only share an endpoint do not
// overlap; identical intervals do.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Contains reports whether [outerStart, outerEnd] fully covers
// [innerStart, innerEnd]. Matching endpoints count as contained.
func Contains(outerStart, outerEnd, innerStart, innerEnd int) bool {
	return outerStart <= innerStart && outerEnd >= innerEnd
}

// MinuteOfDay returns t's wall-clock position as minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DayOfWeek returns t's day as 0=Sunday..6=Saturday.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

var dayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return "Unknown"
	}
	return dayNames[dayOfWeek]
}

// ValidDayOfWeek reports whether d is in the 0=Sunday..6=Saturday range.
func ValidDayOfWeek(d int) bool {
	return d >= 0 && d <= 6
}
