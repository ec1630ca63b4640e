package scheduling

import (
	"time"

	"github.com/brightpath/tutor_match/apperrors"
	"github.com/google/uuid"
)

// CancellationLeadTime is the minimum notice a student must give before a
// session's start time to cancel it themselves.
const CancellationLeadTime = 24 * time.Hour

// Transition is one requested status change on a booking, with everything
// the transition table needs to authorize it.
type Transition struct {
	From       BookingStatus
	To         BookingStatus
	ActorID    uuid.UUID
	ActorRole  Role
	StudentID  uuid.UUID
	ProviderID uuid.UUID
	StartTime  time.Time
	Now        time.Time
}

// Authorize checks the transition against the lifecycle table. It returns
// nil when the transition is permitted, an InvalidState error when the
// current status forbids it, a Forbidden error when the actor may not
// perform it, and a Validation error when the student cancellation window
// has closed.
func (t Transition) Authorize() error {
	switch t.From {
	case StatusCancelled:
		if t.To == StatusCancelled {
			return apperrors.InvalidState("booking is already cancelled")
		}
		return apperrors.InvalidState("cannot update a cancelled booking")
	case StatusCompleted:
		if t.To == StatusCancelled {
			return apperrors.InvalidState("cannot cancel a completed booking")
		}
		return apperrors.InvalidState("cannot modify a completed booking")
	}

	switch t.To {
	case StatusConfirmed:
		if t.From != StatusPending {
			return apperrors.InvalidState("only pending bookings can be confirmed")
		}
		return t.requireProviderOrAdmin("only the provider or an admin can confirm a booking")
	case StatusCompleted:
		if t.From != StatusConfirmed {
			return apperrors.InvalidState("only confirmed bookings can be marked as completed")
		}
		return t.requireProviderOrAdmin("only the provider or an admin can complete a booking")
	case StatusCancelled:
		return t.authorizeCancel()
	}
	return apperrors.Validation("invalid target status")
}

func (t Transition) requireProviderOrAdmin(message string) error {
	if t.ActorRole.IsAdmin() {
		return nil
	}
	if t.ActorID == t.ProviderID {
		return nil
	}
	return apperrors.Forbidden(message)
}

func (t Transition) authorizeCancel() error {
	if t.ActorRole.IsAdmin() || t.ActorID == t.ProviderID {
		return nil
	}
	if t.ActorID != t.StudentID {
		return apperrors.Forbidden("you are not authorized to cancel this booking")
	}
	// Students only cancel with at least 24 hours notice.
	if t.StartTime.Sub(t.Now) < CancellationLeadTime {
		return apperrors.Validation("bookings can only be cancelled at least 24 hours in advance")
	}
	return nil
}
