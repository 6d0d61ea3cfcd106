package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"turnos/backend/internal/domain"
	"turnos/backend/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) Create(ctx context.Context, in domain.NewAppointment) (domain.Appointment, error) {
	m := domain.Appointment{
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

	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Appointment{}, err
	}
	return m, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (domain.Appointment, error) {
	var m domain.Appointment
	err := r.db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return m, nil
}

func (r *AppointmentRepo) GetByDNI(ctx context.Context, dni string) ([]domain.Appointment, error) {
	rows := make([]domain.Appointment, 0)
	err := r.db.NewSelect().
		Model(&rows).
		Where("dni = ?", dni).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update mutates only active rows with a single statement scoped by primary
// key, then re-reads the row for the result instead of trusting a prior read.
func (r *AppointmentRepo) Update(ctx context.Context, id int64, patch domain.AppointmentPatch) (domain.Appointment, error) {
	q := r.db.NewUpdate().
		Model((*domain.Appointment)(nil)).
		Where("id = ?", id).
		Where("status = ?", domain.StatusActive)

	assigned := false
	set := func(column string, value any) {
		q = q.Set("? = ?", bun.Ident(column), value)
		assigned = true
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.LastName != nil {
		set("last_name", *patch.LastName)
	}
	if patch.DNI != nil {
		set("dni", *patch.DNI)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.District != nil {
		set("district", *patch.District)
	}
	if patch.AppointmentDate != nil {
		set("appointment_date", *patch.AppointmentDate)
	}
	if patch.AppointmentTime != nil {
		set("appointment_time", *patch.AppointmentTime)
	}
	if patch.Procedure != nil {
		set("procedure", *patch.Procedure)
	}
	if patch.Profession != nil {
		set("profession", *patch.Profession)
	}
	if patch.Observations != nil {
		set("observations", *patch.Observations)
	}

	if !assigned {
		appt, err := r.GetByID(ctx, id)
		if err != nil {
			return domain.Appointment{}, err
		}
		if appt.Status == domain.StatusCancelled {
			return domain.Appointment{}, store.ErrCancelled
		}
		return appt, nil
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		appt, err := r.GetByID(ctx, id)
		if err != nil {
			return domain.Appointment{}, err
		}
		if appt.Status == domain.StatusCancelled {
			return domain.Appointment{}, store.ErrCancelled
		}
		return domain.Appointment{}, store.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Cancel re-sets the status column unconditionally, so cancelling an already
// cancelled appointment still reports success.
func (r *AppointmentRepo) Cancel(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Appointment)(nil)).
		Set("? = ?", bun.Ident("status"), domain.StatusCancelled).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *AppointmentRepo) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	rows := make([]domain.Appointment, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
