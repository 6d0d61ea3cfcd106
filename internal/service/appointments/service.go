// Package appointments exposes the appointment lifecycle operations the
// transport layer calls. It validates payloads against the current date and
// delegates record ownership to the configured store.
package appointments

import (
	"context"
	"time"

	"turnos/backend/internal/domain"
	"turnos/backend/internal/store"
	"turnos/backend/internal/validate"
)

type Service struct {
	repo store.AppointmentStore

	// now supplies the reference date for the booking window; swapped in
	// tests for deterministic boundaries.
	now func() time.Time
}

func NewService(repo store.AppointmentStore) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates a full payload and stores it. Validation failures come
// back as validate.FieldErrors and never reach the store.
func (s *Service) Create(ctx context.Context, in validate.CreateParams) (domain.Appointment, error) {
	payload, errs := validate.Create(in, domain.DateOf(s.now()))
	if errs != nil {
		return domain.Appointment{}, errs
	}
	return s.repo.Create(ctx, payload)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// SearchByDNI returns every appointment whose dni matches exactly, active
// and cancelled alike. An unknown dni is an empty result, not an error.
func (s *Service) SearchByDNI(ctx context.Context, dni string) ([]domain.Appointment, error) {
	return s.repo.GetByDNI(ctx, dni)
}

// Update validates the supplied fields and applies them to an active record.
func (s *Service) Update(ctx context.Context, id int64, in validate.UpdateParams) (domain.Appointment, error) {
	patch, errs := validate.Update(in, domain.DateOf(s.now()))
	if errs != nil {
		return domain.Appointment{}, errs
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Cancel(ctx context.Context, id int64) (bool, error) {
	return s.repo.Cancel(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.repo.ListAll(ctx)
}
