package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinicbook/admin-console/internal/application/projections"
	"github.com/clinicbook/admin-console/internal/application/stats"
	"github.com/clinicbook/admin-console/internal/domain/entities"
)

// AppointmentWorkflow defines the interface for appointment transitions
type AppointmentWorkflow interface {
	Confirm(ctx context.Context, id string) error
	Reject(ctx context.Context, id, reason string) error
	Complete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status entities.AppointmentStatus) error
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	workflow   AppointmentWorkflow
	aggregator *projections.Aggregator
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(workflow AppointmentWorkflow, aggregator *projections.Aggregator) *AppointmentHandler {
	return &AppointmentHandler{
		workflow:   workflow,
		aggregator: aggregator,
	}
}

// ListAppointments handles GET /api/appointments?q=...&status=...
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var status entities.AppointmentStatus
	if raw := r.URL.Query().Get("status"); raw != "" && raw != stats.FilterAll {
		status = entities.AppointmentStatus(raw)
		if !entities.ValidAppointmentStatus(status) {
			respondWithError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
	}

	appointments := stats.FilterAppointments(h.aggregator.Appointments(), query, status)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetAppointment handles GET /api/appointments/{id}
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	appointment, ok := h.aggregator.Appointment(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "appointment not found")
		return
	}
	respondWithJSON(w, http.StatusOK, appointment)
}

// ConfirmAppointment handles POST /api/appointments/{id}/confirm
func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	if err := h.workflow.Confirm(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": string(entities.AppointmentConfirmed)})
}

// RejectAppointment handles POST /api/appointments/{id}/reject
func (h *AppointmentHandler) RejectAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.workflow.Reject(r.Context(), id, payload.Reason); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": string(entities.AppointmentRejected)})
}

// CompleteAppointment handles POST /api/appointments/{id}/complete
func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	if err := h.workflow.Complete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": string(entities.AppointmentCompleted)})
}

// SetAppointmentStatus handles PUT /api/appointments/{id}/status — the raw
// override that skips transition guards.
func (h *AppointmentHandler) SetAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	var payload struct {
		Status entities.AppointmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.workflow.SetStatus(r.Context(), id, payload.Status); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": string(payload.Status)})
}
