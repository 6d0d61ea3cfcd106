// Package memory holds appointments in process memory. It is the reference
// backend: volatile, used for tests and the default zero-config mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"turnos/backend/internal/domain"
	"turnos/backend/internal/store"
)

type AppointmentRepo struct {
	mu     sync.Mutex
	byID   map[int64]domain.Appointment
	nextID int64
}

func NewAppointmentRepo() *AppointmentRepo {
	return &AppointmentRepo{
		byID:   make(map[int64]domain.Appointment),
		nextID: 1,
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, in domain.NewAppointment) (domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt := domain.Appointment{
		ID:              r.nextID,
		Name:            in.Name,
		LastName:        in.LastName,
		DNI:             in.DNI,
		Phone:           in.Phone,
		District:        in.District,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Procedure:       in.Procedure,
		Profession:      in.Profession,
		Observations:    in.Observations,
		Status:          domain.StatusActive,
		CreatedAt:       time.Now().UTC(),
	}
	r.nextID++
	r.byID[appt.ID] = appt
	return appt, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.byID[id]
	if !ok {
		return domain.Appointment{}, store.ErrNotFound
	}
	return appt, nil
}

func (r *AppointmentRepo) GetByDNI(ctx context.Context, dni string) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Appointment, 0)
	for _, appt := range r.byID {
		if appt.DNI == dni {
			out = append(out, appt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id int64, patch domain.AppointmentPatch) (domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.byID[id]
	if !ok {
		return domain.Appointment{}, store.ErrNotFound
	}
	if appt.Status == domain.StatusCancelled {
		return domain.Appointment{}, store.ErrCancelled
	}

	patch.Apply(&appt)
	r.byID[id] = appt
	return appt, nil
}

func (r *AppointmentRepo) Cancel(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	appt.Status = domain.StatusCancelled
	r.byID[id] = appt
	return true, nil
}

func (r *AppointmentRepo) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Appointment, 0, len(r.byID))
	for _, appt := range r.byID {
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
