// Package httpapi translates JSON requests into appointment service calls.
// It owns no state: every route is a thin shim over the service boundary.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"turnos/backend/internal/domain"
	"turnos/backend/internal/store"
	"turnos/backend/internal/validate"
)

type AppointmentsHandler struct {
	svc appointmentsService
	log *slog.Logger
}

type appointmentsService interface {
	Create(ctx context.Context, in validate.CreateParams) (domain.Appointment, error)
	Get(ctx context.Context, id int64) (domain.Appointment, error)
	SearchByDNI(ctx context.Context, dni string) ([]domain.Appointment, error)
	Update(ctx context.Context, id int64, in validate.UpdateParams) (domain.Appointment, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]domain.Appointment, error)
}

func NewAppointmentsHandler(svc appointmentsService, log *slog.Logger) *AppointmentsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentsHandler{
		svc: svc,
		log: log.With(slog.String("component", "httpapi.appointments")),
	}
}

func (h *AppointmentsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/appointments", h.create)
	mux.HandleFunc("GET /api/appointments", h.list)
	mux.HandleFunc("GET /api/appointments/{id}", h.get)
	mux.HandleFunc("GET /api/appointments/search/{dni}", h.search)
	mux.HandleFunc("PATCH /api/appointments/{id}", h.update)
	mux.HandleFunc("DELETE /api/appointments/{id}", h.cancel)
}

func (h *AppointmentsHandler) create(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "CreateAppointment"))

	var params validate.CreateParams
	if !decodeBody(w, r, log, &params) {
		return
	}

	appt, err := h.svc.Create(r.Context(), params)
	if err != nil {
		var fieldErrs validate.FieldErrors
		if errors.As(err, &fieldErrs) {
			log.Warn("invalid payload", slog.Int("field_errors", len(fieldErrs)))
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": fieldErrs})
			return
		}
		log.Error("appointment create failed", slog.Any("err", err))
		writeInternalError(w)
		return
	}

	log.Info("appointment created",
		slog.Int64("appointment_id", appt.ID),
		slog.String("district", appt.District),
		slog.String("date", appt.AppointmentDate.String()),
	)
	writeJSON(w, http.StatusOK, appt)
}

func (h *AppointmentsHandler) get(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "GetAppointment"))

	id, ok := pathID(w, r, log)
	if !ok {
		return
	}

	appt, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		log.Error("appointment get failed", slog.Any("err", err), slog.Int64("appointment_id", id))
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *AppointmentsHandler) search(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "SearchAppointments"))

	dni := r.PathValue("dni")
	appts, err := h.svc.SearchByDNI(r.Context(), dni)
	if err != nil {
		log.Error("appointment search failed", slog.Any("err", err))
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

func (h *AppointmentsHandler) update(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "UpdateAppointment"))

	id, ok := pathID(w, r, log)
	if !ok {
		return
	}

	var params validate.UpdateParams
	if !decodeBody(w, r, log, &params) {
		return
	}

	appt, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		var fieldErrs validate.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			log.Warn("invalid payload", slog.Int64("appointment_id", id), slog.Int("field_errors", len(fieldErrs)))
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": fieldErrs})
		case errors.Is(err, store.ErrNotFound):
			writeNotFound(w)
		case errors.Is(err, store.ErrCancelled):
			log.Warn("update of cancelled appointment", slog.Int64("appointment_id", id))
			writeJSON(w, http.StatusConflict, map[string]any{"message": "Appointment is cancelled"})
		default:
			log.Error("appointment update failed", slog.Any("err", err), slog.Int64("appointment_id", id))
			writeInternalError(w)
		}
		return
	}

	log.Info("appointment updated", slog.Int64("appointment_id", id))
	writeJSON(w, http.StatusOK, appt)
}

func (h *AppointmentsHandler) cancel(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "CancelAppointment"))

	id, ok := pathID(w, r, log)
	if !ok {
		return
	}

	cancelled, err := h.svc.Cancel(r.Context(), id)
	if err != nil {
		log.Error("appointment cancel failed", slog.Any("err", err), slog.Int64("appointment_id", id))
		writeInternalError(w)
		return
	}
	if !cancelled {
		writeNotFound(w)
		return
	}

	log.Info("appointment cancelled", slog.Int64("appointment_id", id))
	writeJSON(w, http.StatusOK, map[string]any{"message": "Appointment cancelled"})
}

func (h *AppointmentsHandler) list(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "ListAppointments"))

	appts, err := h.svc.List(r.Context())
	if err != nil {
		log.Error("appointment list failed", slog.Any("err", err))
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

func pathID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		log.Warn("invalid appointment id", slog.String("raw", r.PathValue("id")))
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid appointment ID"})
		return 0, false
	}
	return id, true
}

// decodeBody rejects unknown fields, which also blocks writes to id, status
// and createdAt through the update route.
func decodeBody(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		log.Warn("undecodable body", slog.Any("err", err))
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Appointment not found"})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Internal server error"})
}
