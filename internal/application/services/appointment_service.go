package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/providers"
	"github.com/clinicbook/admin-console/internal/domain/repositories"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// AppointmentService executes admin appointment transitions. Confirm, Reject
// and Complete are the guarded actions; SetStatus is the raw override that
// bypasses the guards. Every transition issues exactly one write; a failed
// write is reported as TRANSITION_FAILED and never retried here — the caller
// decides whether to resurface the action.
//
// Transition rules are enforced client-side only; the store itself is
// unconstrained.
type AppointmentService struct {
	store providers.DocumentStore
	audit repositories.AuditRepository
}

// NewAppointmentService creates a new appointment service. audit may be nil.
func NewAppointmentService(store providers.DocumentStore, audit repositories.AuditRepository) *AppointmentService {
	return &AppointmentService{store: store, audit: audit}
}

// Confirm moves a pending or awaiting-approval appointment to confirmed.
func (s *AppointmentService) Confirm(ctx context.Context, id string) error {
	appt, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if appt.Status != entities.AppointmentPending && appt.Status != entities.AppointmentAwaitingApproval {
		return apperrors.NewValidationError(fmt.Sprintf("cannot confirm appointment in status %q", appt.Status))
	}

	patch := map[string]any{"status": string(entities.AppointmentConfirmed)}
	if err := s.store.Update(ctx, providers.CollectionAppointments, id, patch); err != nil {
		return transitionErr("confirm", id, err)
	}
	recordAudit(ctx, s.audit, "appointment.confirm", providers.CollectionAppointments, id, "")
	return nil
}

// Reject moves a pending or awaiting-approval appointment to rejected. The
// reason is required; the write sets exactly status and rejectionReason.
func (s *AppointmentService) Reject(ctx context.Context, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewValidationError("rejection reason is required")
	}

	appt, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if appt.Status != entities.AppointmentPending && appt.Status != entities.AppointmentAwaitingApproval {
		return apperrors.NewValidationError(fmt.Sprintf("cannot reject appointment in status %q", appt.Status))
	}

	patch := map[string]any{
		"status":          string(entities.AppointmentRejected),
		"rejectionReason": reason,
	}
	if err := s.store.Update(ctx, providers.CollectionAppointments, id, patch); err != nil {
		return transitionErr("reject", id, err)
	}
	recordAudit(ctx, s.audit, "appointment.reject", providers.CollectionAppointments, id, reason)
	return nil
}

// Complete moves a confirmed appointment to completed.
func (s *AppointmentService) Complete(ctx context.Context, id string) error {
	appt, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if appt.Status != entities.AppointmentConfirmed {
		return apperrors.NewValidationError(fmt.Sprintf("cannot complete appointment in status %q", appt.Status))
	}

	patch := map[string]any{"status": string(entities.AppointmentCompleted)}
	if err := s.store.Update(ctx, providers.CollectionAppointments, id, patch); err != nil {
		return transitionErr("complete", id, err)
	}
	recordAudit(ctx, s.audit, "appointment.complete", providers.CollectionAppointments, id, "")
	return nil
}

// SetStatus is the raw override: any status to any other status, with no
// guard beyond the status value itself being known.
func (s *AppointmentService) SetStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	if !entities.ValidAppointmentStatus(status) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown appointment status %q", status))
	}

	patch := map[string]any{"status": string(status)}
	if err := s.store.Update(ctx, providers.CollectionAppointments, id, patch); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return err
		}
		return transitionErr("set status", id, err)
	}
	recordAudit(ctx, s.audit, "appointment.setStatus", providers.CollectionAppointments, id, string(status))
	return nil
}

func (s *AppointmentService) load(ctx context.Context, id string) (*entities.Appointment, error) {
	doc, err := s.store.Get(ctx, providers.CollectionAppointments, id)
	if err != nil {
		return nil, err
	}
	return entities.AppointmentFromDocument(doc.ID, doc.Fields), nil
}

func transitionErr(action, id string, err error) error {
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return err
	}
	return apperrors.NewTransitionFailedError(fmt.Sprintf("failed to %s appointment %s", action, id), err)
}
