package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/providers"
	"github.com/clinicbook/admin-console/internal/domain/repositories"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// DoctorService executes the doctor verification state machine and the
// non-workflow profile operations.
type DoctorService struct {
	store providers.DocumentStore
	audit repositories.AuditRepository
	now   func() time.Time
}

// NewDoctorService creates a new doctor service. audit may be nil.
func NewDoctorService(store providers.DocumentStore, audit repositories.AuditRepository) *DoctorService {
	return &DoctorService{store: store, audit: audit, now: time.Now}
}

// Approve marks a doctor verified and clears any previous rejection reason.
func (s *DoctorService) Approve(ctx context.Context, id string) error {
	patch := map[string]any{
		"isVerified":         true,
		"verificationStatus": string(entities.VerificationApproved),
		"rejectionReason":    "",
	}
	if err := s.store.Update(ctx, providers.CollectionDoctors, id, patch); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, "doctor.approve", providers.CollectionDoctors, id, "")
	return nil
}

// Reject marks a doctor rejected with the given reason. The reason is
// required.
func (s *DoctorService) Reject(ctx context.Context, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewValidationError("rejection reason is required")
	}
	patch := map[string]any{
		"isVerified":         false,
		"verificationStatus": string(entities.VerificationRejected),
		"rejectionReason":    reason,
	}
	if err := s.store.Update(ctx, providers.CollectionDoctors, id, patch); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, "doctor.reject", providers.CollectionDoctors, id, reason)
	return nil
}

// ToggleAvailability flips isAvailable independent of verification status;
// a doctor can be toggled while still pending. Returns the new state.
func (s *DoctorService) ToggleAvailability(ctx context.Context, id string) (bool, error) {
	doc, err := s.store.Get(ctx, providers.CollectionDoctors, id)
	if err != nil {
		return false, err
	}
	doctor := entities.DoctorFromDocument(doc.ID, doc.Fields)

	next := !doctor.IsAvailable
	if err := s.store.Update(ctx, providers.CollectionDoctors, id, map[string]any{"isAvailable": next}); err != nil {
		return false, err
	}
	recordAudit(ctx, s.audit, "doctor.toggleAvailability", providers.CollectionDoctors, id, strconv.FormatBool(next))
	return next, nil
}

// Delete removes a doctor document. No referential cleanup is performed.
func (s *DoctorService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, providers.CollectionDoctors, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, "doctor.delete", providers.CollectionDoctors, id, "")
	return nil
}

// DoctorInput carries the fields of the admin add-doctor form.
type DoctorInput struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Specialty       string   `json:"specialty"`
	About           string   `json:"about"`
	ProfileImage    string   `json:"profileImage"`
	ExperienceYears int      `json:"experienceYears"`
	ConsultationFee float64  `json:"consultationFee"`
	IsAvailable     bool     `json:"isAvailable"`
	AvailableDays   []string `json:"availableDays"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	HospitalName    string   `json:"hospitalName"`
	HospitalAddress string   `json:"hospitalAddress"`
	Qualifications  []string `json:"qualifications"`
	LicenseNumber   string   `json:"licenseNumber"`

	// VerificationStatus is accepted from callers but always overridden:
	// admin-entered doctors bypass verification.
	VerificationStatus entities.VerificationStatus `json:"verificationStatus"`
}

// Create adds a doctor through the admin flow. Admin-entered doctors are
// auto-approved regardless of the requested verification status — a deliberate
// asymmetry versus self-registered doctors.
func (s *DoctorService) Create(ctx context.Context, input DoctorInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Specialty) == "" {
		return "", apperrors.NewValidationError("name, email and specialty are required")
	}
	if input.ConsultationFee < 0 {
		return "", apperrors.NewValidationError("consultation fee must not be negative")
	}
	if input.ExperienceYears < 0 {
		return "", apperrors.NewValidationError("experience years must not be negative")
	}

	fields := map[string]any{
		"name":               input.Name,
		"email":              input.Email,
		"phone":              input.Phone,
		"specialty":          input.Specialty,
		"about":              input.About,
		"profileImage":       input.ProfileImage,
		"experienceYears":    input.ExperienceYears,
		"consultationFee":    input.ConsultationFee,
		"isAvailable":        input.IsAvailable,
		"availableDays":      input.AvailableDays,
		"startTime":          input.StartTime,
		"endTime":            input.EndTime,
		"hospitalName":       input.HospitalName,
		"hospitalAddress":    input.HospitalAddress,
		"qualifications":     input.Qualifications,
		"licenseNumber":      input.LicenseNumber,
		"rating":             0.0,
		"totalReviews":       0,
		"rejectionReason":    "",
		"isVerified":         true,
		"verificationStatus": string(entities.VerificationApproved),
		"createdAt":          s.now().UTC(),
	}

	id, err := s.store.Add(ctx, providers.CollectionDoctors, fields)
	if err != nil {
		return "", err
	}
	recordAudit(ctx, s.audit, "doctor.create", providers.CollectionDoctors, id, input.Name)
	return id, nil
}

// ProfileForm carries a doctor profile edit. Numeric fields arrive as form
// strings and are validated before any write is attempted.
type ProfileForm struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Specialty       string   `json:"specialty"`
	About           string   `json:"about"`
	ProfileImage    string   `json:"profileImage"`
	ExperienceYears string   `json:"experienceYears"`
	ConsultationFee string   `json:"consultationFee"`
	AvailableDays   []string `json:"availableDays"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	HospitalName    string   `json:"hospitalName"`
	HospitalAddress string   `json:"hospitalAddress"`
	Qualifications  []string `json:"qualifications"`
	LicenseNumber   string   `json:"licenseNumber"`
}

// UpdateProfile applies a profile edit as a non-workflow overwrite. It does
// not touch verification state, availability or rating fields.
func (s *DoctorService) UpdateProfile(ctx context.Context, id string, form ProfileForm) error {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" || strings.TrimSpace(form.Specialty) == "" {
		return apperrors.NewValidationError("name, email and specialty are required")
	}

	experience, err := parseFormInt("experience years", form.ExperienceYears)
	if err != nil {
		return err
	}
	fee, err := parseFormFloat("consultation fee", form.ConsultationFee)
	if err != nil {
		return err
	}

	patch := map[string]any{
		"name":            form.Name,
		"email":           form.Email,
		"phone":           form.Phone,
		"specialty":       form.Specialty,
		"about":           form.About,
		"profileImage":    form.ProfileImage,
		"experienceYears": experience,
		"consultationFee": fee,
		"availableDays":   form.AvailableDays,
		"startTime":       form.StartTime,
		"endTime":         form.EndTime,
		"hospitalName":    form.HospitalName,
		"hospitalAddress": form.HospitalAddress,
		"qualifications":  form.Qualifications,
		"licenseNumber":   form.LicenseNumber,
	}
	if err := s.store.Update(ctx, providers.CollectionDoctors, id, patch); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, "doctor.updateProfile", providers.CollectionDoctors, id, "")
	return nil
}

// Empty form numerics default to zero, matching the add form's blanks.
func parseFormInt(field, raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be a whole number", field))
	}
	if v < 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must not be negative", field))
	}
	return v, nil
}

func parseFormFloat(field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be a number", field))
	}
	if v < 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must not be negative", field))
	}
	return v, nil
}
