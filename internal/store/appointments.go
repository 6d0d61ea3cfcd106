package store

import (
	"context"

	"turnos/backend/internal/domain"
)

// AppointmentStore is the single contract every backend satisfies. Callers
// are backend-agnostic; the concrete implementation is chosen at startup.
//
// Behavior both backends guarantee:
//   - Create assigns a fresh id (never reused), sets status to active and
//     stamps the creation time. Input is assumed pre-validated.
//   - GetByID and Update report a missing id with ErrNotFound.
//   - Update on a cancelled record fails with ErrCancelled; cancellation is
//     terminal and no further mutation is permitted.
//   - Cancel returns false for a missing id and true otherwise; cancelling
//     an already cancelled record is a successful no-op.
//   - Records are never deleted.
//   - ListAll returns every record; ordering is not part of the contract.
type AppointmentStore interface {
	Create(ctx context.Context, in domain.NewAppointment) (domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (domain.Appointment, error)
	GetByDNI(ctx context.Context, dni string) ([]domain.Appointment, error)
	Update(ctx context.Context, id int64, patch domain.AppointmentPatch) (domain.Appointment, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]domain.Appointment, error)
}
