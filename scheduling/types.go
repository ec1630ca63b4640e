package scheduling

// Role is the closed set of account roles. Authorization points switch on
// it exhaustively instead of comparing raw strings.
type Role string

const (
	RoleStudent   Role = "student"
	RoleTutor     Role = "tutor"
	RoleCounselor Role = "counselor"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleCounselor, RoleAdmin:
		return true
	}
	return false
}

// IsProvider reports whether the role can own availability and receive
// bookings.
func (r Role) IsProvider() bool {
	switch r {
	case RoleTutor, RoleCounselor:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// BookingStatus is the closed booking lifecycle state set.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type SessionType string

const (
	SessionVirtual  SessionType = "virtual"
	SessionInPerson SessionType = "in-person"
)

func (t SessionType) Valid() bool {
	return t == SessionVirtual || t == SessionInPerson
}

type Recurrence string

const (
	RecurrenceOneTime  Recurrence = "one-time"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiweekly Recurrence = "biweekly"
	RecurrenceMonthly  Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOneTime, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}
