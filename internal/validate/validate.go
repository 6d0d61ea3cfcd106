// Package validate checks candidate appointment payloads before they reach
// storage. Every rule runs independently so a bad payload reports all of its
// problems at once, and the reference date is an explicit parameter so callers
// control what "today" means.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"turnos/backend/internal/domain"
)

const bookingWindowDays = 30

var (
	namePattern  = regexp.MustCompile(`^[\p{L}\s]+$`)
	digitPattern = regexp.MustCompile(`^[0-9]+$`)
)

// FieldError is a single human-readable violation on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects violations in field order. A field may contribute
// more than one entry.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// CreateParams is the raw creation payload as received from the caller.
type CreateParams struct {
	Name            string `json:"name"`
	LastName        string `json:"lastName"`
	DNI             string `json:"dni"`
	Phone           string `json:"phone"`
	District        string `json:"district"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Procedure       string `json:"procedure"`
	Profession      string `json:"profession"`
	Observations    string `json:"observations"`
}

// UpdateParams is a raw partial payload. Nil fields were not supplied and
// are not validated. ID, status and creation time are not representable here.
type UpdateParams struct {
	Name            *string `json:"name"`
	LastName        *string `json:"lastName"`
	DNI             *string `json:"dni"`
	Phone           *string `json:"phone"`
	District        *string `json:"district"`
	AppointmentDate *string `json:"appointmentDate"`
	AppointmentTime *string `json:"appointmentTime"`
	Procedure       *string `json:"procedure"`
	Profession      *string `json:"profession"`
	Observations    *string `json:"observations"`
}

// Create validates a full creation payload against today and returns either
// a normalized payload or the complete list of field errors.
func Create(p CreateParams, today domain.Date) (domain.NewAppointment, FieldErrors) {
	var errs FieldErrors

	out := domain.NewAppointment{
		Name:            personalName(&errs, "name", p.Name),
		LastName:        personalName(&errs, "lastName", p.LastName),
		DNI:             digits(&errs, "dni", p.DNI, 7, 8),
		Phone:           digits(&errs, "phone", p.Phone, 8, 15),
		District:        member(&errs, "district", p.District, domain.ValidDistrict, "district"),
		AppointmentDate: dateInWindow(&errs, "appointmentDate", p.AppointmentDate, today),
		AppointmentTime: member(&errs, "appointmentTime", p.AppointmentTime, domain.ValidTimeSlot, "time slot"),
		Procedure:       member(&errs, "procedure", p.Procedure, domain.ValidProcedure, "procedure"),
		Profession:      member(&errs, "profession", p.Profession, domain.ValidProfession, "profession"),
		Observations:    observations(&errs, "observations", p.Observations),
	}

	if len(errs) > 0 {
		return domain.NewAppointment{}, errs
	}
	return out, nil
}

// Update validates only the fields present in p, against the same per-field
// rules Create applies.
func Update(p UpdateParams, today domain.Date) (domain.AppointmentPatch, FieldErrors) {
	var errs FieldErrors
	var patch domain.AppointmentPatch

	if p.Name != nil {
		v := personalName(&errs, "name", *p.Name)
		patch.Name = &v
	}
	if p.LastName != nil {
		v := personalName(&errs, "lastName", *p.LastName)
		patch.LastName = &v
	}
	if p.DNI != nil {
		v := digits(&errs, "dni", *p.DNI, 7, 8)
		patch.DNI = &v
	}
	if p.Phone != nil {
		v := digits(&errs, "phone", *p.Phone, 8, 15)
		patch.Phone = &v
	}
	if p.District != nil {
		v := member(&errs, "district", *p.District, domain.ValidDistrict, "district")
		patch.District = &v
	}
	if p.AppointmentDate != nil {
		v := dateInWindow(&errs, "appointmentDate", *p.AppointmentDate, today)
		patch.AppointmentDate = &v
	}
	if p.AppointmentTime != nil {
		v := member(&errs, "appointmentTime", *p.AppointmentTime, domain.ValidTimeSlot, "time slot")
		patch.AppointmentTime = &v
	}
	if p.Procedure != nil {
		v := member(&errs, "procedure", *p.Procedure, domain.ValidProcedure, "procedure")
		patch.Procedure = &v
	}
	if p.Profession != nil {
		v := member(&errs, "profession", *p.Profession, domain.ValidProfession, "profession")
		patch.Profession = &v
	}
	if p.Observations != nil {
		v := observations(&errs, "observations", *p.Observations)
		patch.Observations = &v
	}

	if len(errs) > 0 {
		return domain.AppointmentPatch{}, errs
	}
	return patch, nil
}

func personalName(errs *FieldErrors, field, value string) string {
	v := strings.TrimSpace(value)
	if !namePattern.MatchString(v) {
		*errs = append(*errs, FieldError{field, "must contain only letters and spaces"})
	}
	if n := utf8.RuneCountInString(v); n < 2 || n > 50 {
		*errs = append(*errs, FieldError{field, "must be between 2 and 50 characters"})
	}
	return v
}

func digits(errs *FieldErrors, field, value string, minLen, maxLen int) string {
	v := strings.TrimSpace(value)
	if !digitPattern.MatchString(v) {
		*errs = append(*errs, FieldError{field, "must contain only digits"})
	}
	if n := len(v); n < minLen || n > maxLen {
		*errs = append(*errs, FieldError{field, fmt.Sprintf("must be between %d and %d digits", minLen, maxLen)})
	}
	return v
}

func member(errs *FieldErrors, field, value string, valid func(string) bool, kind string) string {
	if !valid(value) {
		*errs = append(*errs, FieldError{field, "is not a valid " + kind})
	}
	return value
}

func dateInWindow(errs *FieldErrors, field, value string, today domain.Date) domain.Date {
	d, err := domain.ParseDate(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, FieldError{field, "must be a date in YYYY-MM-DD format"})
		return domain.Date{}
	}
	if d.Before(today) {
		*errs = append(*errs, FieldError{field, "cannot be in the past"})
	}
	if d.After(today.AddDays(bookingWindowDays)) {
		*errs = append(*errs, FieldError{field, fmt.Sprintf("must be within the next %d days", bookingWindowDays)})
	}
	return d
}

func observations(errs *FieldErrors, field, value string) string {
	if utf8.RuneCountInString(value) > 500 {
		*errs = append(*errs, FieldError{field, "must be at most 500 characters"})
	}
	return value
}
