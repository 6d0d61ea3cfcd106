package domain

import (
	"slices"
	"time"

	"github.com/uptrace/bun"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Districts are fixed identifiers, not display names.
var Districts = []string{
	"district-1", "district-2", "district-3", "district-4", "district-5",
	"district-6", "district-7", "district-8", "district-9", "district-10",
}

// TimeSlots are the half-hour slots appointments can be booked into.
var TimeSlots = []string{"10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}

var Procedures = []string{
	"Certificado médico",
	"Certificado de ética",
	"Certificado laboral",
	"Programa de residencia",
	"Certificado de credencial médico",
	"Título de especialista",
}

var Professions = []string{"Médico Argentino", "Médico Extranjero", "Particular"}

func ValidDistrict(s string) bool   { return slices.Contains(Districts, s) }
func ValidTimeSlot(s string) bool   { return slices.Contains(TimeSlots, s) }
func ValidProcedure(s string) bool  { return slices.Contains(Procedures, s) }
func ValidProfession(s string) bool { return slices.Contains(Professions, s) }

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Name            string    `bun:"name,notnull" json:"name"`
	LastName        string    `bun:"last_name,notnull" json:"lastName"`
	DNI             string    `bun:"dni,notnull" json:"dni"`
	Phone           string    `bun:"phone,notnull" json:"phone"`
	District        string    `bun:"district,notnull" json:"district"`
	AppointmentDate Date      `bun:"appointment_date,notnull" json:"appointmentDate"`
	AppointmentTime string    `bun:"appointment_time,notnull" json:"appointmentTime"`
	Procedure       string    `bun:"procedure,notnull" json:"procedure"`
	Profession      string    `bun:"profession,notnull" json:"profession"`
	Observations    string    `bun:"observations" json:"observations"`
	Status          Status    `bun:"status,notnull" json:"status"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// NewAppointment is a validated creation payload. The backend assigns
// ID, Status and CreatedAt; callers never do.
type NewAppointment struct {
	Name            string
	LastName        string
	DNI             string
	Phone           string
	District        string
	AppointmentDate Date
	AppointmentTime string
	Procedure       string
	Profession      string
	Observations    string
}

// AppointmentPatch is a partial update. Nil fields are left untouched.
// ID, Status and CreatedAt are not patchable.
type AppointmentPatch struct {
	Name            *string
	LastName        *string
	DNI             *string
	Phone           *string
	District        *string
	AppointmentDate *Date
	AppointmentTime *string
	Procedure       *string
	Profession      *string
	Observations    *string
}

// Apply overlays the set fields of p onto a. Both backends route partial
// updates through here so they merge identically.
func (p AppointmentPatch) Apply(a *Appointment) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.DNI != nil {
		a.DNI = *p.DNI
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.District != nil {
		a.District = *p.District
	}
	if p.AppointmentDate != nil {
		a.AppointmentDate = *p.AppointmentDate
	}
	if p.AppointmentTime != nil {
		a.AppointmentTime = *p.AppointmentTime
	}
	if p.Procedure != nil {
		a.Procedure = *p.Procedure
	}
	if p.Profession != nil {
		a.Profession = *p.Profession
	}
	if p.Observations != nil {
		a.Observations = *p.Observations
	}
}
