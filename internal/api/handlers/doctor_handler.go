package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinicbook/admin-console/internal/application/projections"
	"github.com/clinicbook/admin-console/internal/application/services"
	"github.com/clinicbook/admin-console/internal/application/stats"
)

// DoctorWorkflow defines the interface for doctor verification and profile
// operations
type DoctorWorkflow interface {
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id, reason string) error
	ToggleAvailability(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, input services.DoctorInput) (string, error)
	UpdateProfile(ctx context.Context, id string, form services.ProfileForm) error
}

// DoctorHandler handles doctor requests
type DoctorHandler struct {
	workflow   DoctorWorkflow
	aggregator *projections.Aggregator
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(workflow DoctorWorkflow, aggregator *projections.Aggregator) *DoctorHandler {
	return &DoctorHandler{
		workflow:   workflow,
		aggregator: aggregator,
	}
}

// ListDoctors handles GET /api/doctors?q=...&filter=...
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filter := r.URL.Query().Get("filter")

	doctors := stats.FilterDoctors(h.aggregator.Doctors(), query, filter)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	doctor, ok := h.aggregator.Doctor(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "doctor not found")
		return
	}
	respondWithJSON(w, http.StatusOK, doctor)
}

// CreateDoctor handles POST /api/doctors
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var input services.DoctorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	id, err := h.workflow.Create(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ApproveDoctor handles POST /api/doctors/{id}/approve
func (h *DoctorHandler) ApproveDoctor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	if err := h.workflow.Approve(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"verificationStatus": "approved"})
}

// RejectDoctor handles POST /api/doctors/{id}/reject
func (h *DoctorHandler) RejectDoctor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
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
	respondWithJSON(w, http.StatusOK, map[string]string{"verificationStatus": "rejected"})
}

// ToggleDoctorAvailability handles POST /api/doctors/{id}/availability
func (h *DoctorHandler) ToggleDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	available, err := h.workflow.ToggleAvailability(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"isAvailable": available})
}

// UpdateDoctorProfile handles PUT /api/doctors/{id}
func (h *DoctorHandler) UpdateDoctorProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	var form services.ProfileForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.workflow.UpdateProfile(r.Context(), id, form); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDoctor handles DELETE /api/doctors/{id}
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	if err := h.workflow.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
