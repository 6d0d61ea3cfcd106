package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"turnos/backend/internal/domain"
	"turnos/backend/internal/validate"
)

type fakeStore struct {
	createFn   func(ctx context.Context, in domain.NewAppointment) (domain.Appointment, error)
	getByIDFn  func(ctx context.Context, id int64) (domain.Appointment, error)
	getByDNIFn func(ctx context.Context, dni string) ([]domain.Appointment, error)
	updateFn   func(ctx context.Context, id int64, patch domain.AppointmentPatch) (domain.Appointment, error)
	cancelFn   func(ctx context.Context, id int64) (bool, error)
	listAllFn  func(ctx context.Context) ([]domain.Appointment, error)
}

func (f *fakeStore) Create(ctx context.Context, in domain.NewAppointment) (domain.Appointment, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, in)
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (domain.Appointment, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeStore) GetByDNI(ctx context.Context, dni string) ([]domain.Appointment, error) {
	if f.getByDNIFn == nil {
		panic("GetByDNI not configured")
	}
	return f.getByDNIFn(ctx, dni)
}

func (f *fakeStore) Update(ctx context.Context, id int64, patch domain.AppointmentPatch) (domain.Appointment, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, id, patch)
}

func (f *fakeStore) Cancel(ctx context.Context, id int64) (bool, error) {
	if f.cancelFn == nil {
		panic("Cancel not configured")
	}
	return f.cancelFn(ctx, id)
}

func (f *fakeStore) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	if f.listAllFn == nil {
		panic("ListAll not configured")
	}
	return f.listAllFn(ctx)
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
}

func validParams() validate.CreateParams {
	return validate.CreateParams{
		Name:            "Ana",
		LastName:        "Pérez",
		DNI:             "30111222",
		Phone:           "1144556677",
		District:        "district-1",
		AppointmentDate: "2026-03-15",
		AppointmentTime: "10:00",
		Procedure:       "Certificado médico",
		Profession:      "Particular",
	}
}

func TestServiceCreate_PassesNormalizedPayload(t *testing.T) {
	var got domain.NewAppointment
	svc := NewService(&fakeStore{
		createFn: func(ctx context.Context, in domain.NewAppointment) (domain.Appointment, error) {
			got = in
			return domain.Appointment{ID: 1, Status: domain.StatusActive}, nil
		},
	})
	svc.now = fixedClock

	created, err := svc.Create(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id = %d, want 1", created.ID)
	}
	if !got.AppointmentDate.Equal(domain.NewDate(2026, time.March, 15)) {
		t.Fatalf("payload date = %v", got.AppointmentDate)
	}
	if got.DNI != "30111222" {
		t.Fatalf("payload dni = %q", got.DNI)
	}
}

func TestServiceCreate_ValidationErrorsSkipStore(t *testing.T) {
	svc := NewService(&fakeStore{})
	svc.now = fixedClock

	p := validParams()
	p.DNI = "123"
	p.AppointmentDate = "2026-04-10" // one day past the window

	_, err := svc.Create(context.Background(), p)
	if err == nil {
		t.Fatalf("expected error")
	}
	var fieldErrs validate.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("error type = %T, want validate.FieldErrors", err)
	}
	fields := map[string]bool{}
	for _, fe := range fieldErrs {
		fields[fe.Field] = true
	}
	if !fields["dni"] || !fields["appointmentDate"] {
		t.Fatalf("errors = %v, want dni and appointmentDate", fieldErrs)
	}
}

func TestServiceCreate_WindowPinnedToClock(t *testing.T) {
	svc := NewService(&fakeStore{
		createFn: func(ctx context.Context, in domain.NewAppointment) (domain.Appointment, error) {
			return domain.Appointment{ID: 1}, nil
		},
	})
	svc.now = fixedClock

	p := validParams()
	p.AppointmentDate = "2026-04-09" // exactly today+30
	if _, err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("boundary date rejected: %v", err)
	}
}

func TestServiceUpdate_ValidatesOnlyPresentFields(t *testing.T) {
	var gotPatch domain.AppointmentPatch
	svc := NewService(&fakeStore{
		updateFn: func(ctx context.Context, id int64, patch domain.AppointmentPatch) (domain.Appointment, error) {
			gotPatch = patch
			return domain.Appointment{ID: id}, nil
		},
	})
	svc.now = fixedClock

	slot := "12:30"
	_, err := svc.Update(context.Background(), 5, validate.UpdateParams{AppointmentTime: &slot})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if gotPatch.AppointmentTime == nil || *gotPatch.AppointmentTime != "12:30" {
		t.Fatalf("patch = %+v", gotPatch)
	}
	if gotPatch.Name != nil {
		t.Fatalf("unexpected patched field: %+v", gotPatch)
	}

	bad := "25:00"
	_, err = svc.Update(context.Background(), 5, validate.UpdateParams{AppointmentTime: &bad})
	var fieldErrs validate.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("error type = %T, want validate.FieldErrors", err)
	}
}

func TestServiceCancel_Passthrough(t *testing.T) {
	var gotID int64
	svc := NewService(&fakeStore{
		cancelFn: func(ctx context.Context, id int64) (bool, error) {
			gotID = id
			return true, nil
		},
	})

	ok, err := svc.Cancel(context.Background(), 9)
	if err != nil || !ok {
		t.Fatalf("Cancel = %v, %v", ok, err)
	}
	if gotID != 9 {
		t.Fatalf("id = %d, want 9", gotID)
	}
}

func TestServiceSearchByDNI_EmptyResultIsNotError(t *testing.T) {
	svc := NewService(&fakeStore{
		getByDNIFn: func(ctx context.Context, dni string) ([]domain.Appointment, error) {
			return []domain.Appointment{}, nil
		},
	})

	got, err := svc.SearchByDNI(context.Background(), "00000000")
	if err != nil {
		t.Fatalf("SearchByDNI error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
