package scheduling

import (
	"testing"
	"time"

	"github.com/brightpath/tutor_match/apperrors"
	"github.com/google/uuid"
)

func TestAuthorizeConfirm(t *testing.T) {
	student := uuid.New()
	provider := uuid.New()
	admin := uuid.New()

	tests := []struct {
		name      string
		from      BookingStatus
		actorID   uuid.UUID
		actorRole Role
		wantCode  string
	}{
		{"provider confirms pending", StatusPending, provider, RoleTutor, ""},
		{"admin confirms pending", StatusPending, admin, RoleAdmin, ""},
		{"student cannot confirm", StatusPending, student, RoleStudent, apperrors.CodeForbidden},
		{"cannot confirm confirmed", StatusConfirmed, provider, RoleTutor, apperrors.CodeInvalidState},
		{"cannot confirm cancelled", StatusCancelled, provider, RoleTutor, apperrors.CodeInvalidState},
		{"cannot confirm completed", StatusCompleted, provider, RoleTutor, apperrors.CodeInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transition{
				From:       tt.from,
				To:         StatusConfirmed,
				ActorID:    tt.actorID,
				ActorRole:  tt.actorRole,
				StudentID:  student,
				ProviderID: provider,
			}
			checkCode(t, tr.Authorize(), tt.wantCode)
		})
	}
}

func TestAuthorizeComplete(t *testing.T) {
	student := uuid.New()
	provider := uuid.New()

	tests := []struct {
		name      string
		from      BookingStatus
		actorID   uuid.UUID
		actorRole Role
		wantCode  string
	}{
		{"provider completes confirmed", StatusConfirmed, provider, RoleCounselor, ""},
		{"cannot complete pending", StatusPending, provider, RoleCounselor, apperrors.CodeInvalidState},
		{"student cannot complete", StatusConfirmed, student, RoleStudent, apperrors.CodeForbidden},
		{"cannot complete completed", StatusCompleted, provider, RoleCounselor, apperrors.CodeInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transition{
				From:       tt.from,
				To:         StatusCompleted,
				ActorID:    tt.actorID,
				ActorRole:  tt.actorRole,
				StudentID:  student,
				ProviderID: provider,
			}
			checkCode(t, tr.Authorize(), tt.wantCode)
		})
	}
}

func TestAuthorizeCancel(t *testing.T) {
	student := uuid.New()
	provider := uuid.New()
	admin := uuid.New()
	stranger := uuid.New()

	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		from      BookingStatus
		actorID   uuid.UUID
		actorRole Role
		startIn   time.Duration
		wantCode  string
	}{
		{"student cancels with 48h notice", StatusPending, student, RoleStudent, 48 * time.Hour, ""},
		{"student cancels at exactly 24h", StatusConfirmed, student, RoleStudent, 24 * time.Hour, ""},
		{"student cancels with 23h notice", StatusConfirmed, student, RoleStudent, 23 * time.Hour, apperrors.CodeValidation},
		{"student cancels past session", StatusConfirmed, student, RoleStudent, -time.Hour, apperrors.CodeValidation},
		{"provider cancels with 1h notice", StatusConfirmed, provider, RoleTutor, time.Hour, ""},
		{"admin cancels with 1h notice", StatusPending, admin, RoleAdmin, time.Hour, ""},
		{"stranger cannot cancel", StatusPending, stranger, RoleStudent, 48 * time.Hour, apperrors.CodeForbidden},
		{"cancel already cancelled", StatusCancelled, provider, RoleTutor, 48 * time.Hour, apperrors.CodeInvalidState},
		{"cancel completed", StatusCompleted, provider, RoleTutor, 48 * time.Hour, apperrors.CodeInvalidState},
		{"admin cannot cancel completed", StatusCompleted, admin, RoleAdmin, 48 * time.Hour, apperrors.CodeInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transition{
				From:       tt.from,
				To:         StatusCancelled,
				ActorID:    tt.actorID,
				ActorRole:  tt.actorRole,
				StudentID:  student,
				ProviderID: provider,
				StartTime:  now.Add(tt.startIn),
				Now:        now,
			}
			checkCode(t, tr.Authorize(), tt.wantCode)
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !StatusCancelled.Terminal() || !StatusCompleted.Terminal() {
		t.Error("cancelled and completed should be terminal")
	}
	if StatusPending.Terminal() || StatusConfirmed.Terminal() {
		t.Error("pending and confirmed should not be terminal")
	}
}

func checkCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if wantCode == "" {
		if err != nil {
			t.Fatalf("Authorize() unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("Authorize() expected %s error, got nil", wantCode)
	}
	if got := apperrors.Code(err); got != wantCode {
		t.Fatalf("Authorize() error code = %s, want %s", got, wantCode)
	}
}
