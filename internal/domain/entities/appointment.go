package entities

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentPending          AppointmentStatus = "pending"
	AppointmentAwaitingApproval AppointmentStatus = "awaitingApproval"
	AppointmentConfirmed        AppointmentStatus = "confirmed"
	AppointmentCompleted        AppointmentStatus = "completed"
	AppointmentCancelled        AppointmentStatus = "cancelled"
	AppointmentRejected         AppointmentStatus = "rejected"
)

// AppointmentStatuses lists every status in badge/filter order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentPending,
	AppointmentAwaitingApproval,
	AppointmentConfirmed,
	AppointmentCompleted,
	AppointmentCancelled,
	AppointmentRejected,
}

// ValidAppointmentStatus reports whether s is a known status value.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Appointment represents a booked appointment. Patient and doctor fields are
// denormalized snapshots taken at booking time.
type Appointment struct {
	ID              string            `json:"id"`
	DoctorID        string            `json:"doctorId"`
	PatientID       string            `json:"patientId"`
	PatientName     string            `json:"patientName"`
	PatientPhone    string            `json:"patientPhone"`
	DoctorName      string            `json:"doctorName"`
	DoctorSpecialty string            `json:"doctorSpecialty"`
	DoctorImage     string            `json:"doctorImage"`
	AppointmentDate time.Time         `json:"appointmentDate"`
	TimeSlot        string            `json:"timeSlot"`
	Fee             float64           `json:"fee"`
	Status          AppointmentStatus `json:"status"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
	CancelReason    string            `json:"cancelReason,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	PaymentSlipURL  string            `json:"paymentSlipUrl,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// AppointmentFromDocument decodes a raw store document into an Appointment.
func AppointmentFromDocument(id string, f map[string]any) *Appointment {
	status := AppointmentStatus(docString(f, "status"))
	if status == "" {
		status = AppointmentPending
	}
	return &Appointment{
		ID:              id,
		DoctorID:        docString(f, "doctorId"),
		PatientID:       docString(f, "patientId"),
		PatientName:     docString(f, "patientName"),
		PatientPhone:    docString(f, "patientPhone"),
		DoctorName:      docString(f, "doctorName"),
		DoctorSpecialty: docString(f, "doctorSpecialty"),
		DoctorImage:     docString(f, "doctorImage"),
		AppointmentDate: docTime(f, "appointmentDate"),
		TimeSlot:        docString(f, "timeSlot"),
		Fee:             docFloat(f, "fee"),
		Status:          status,
		RejectionReason: docString(f, "rejectionReason"),
		CancelReason:    docString(f, "cancelReason"),
		Notes:           docString(f, "notes"),
		PaymentSlipURL:  docString(f, "paymentSlipUrl"),
		CreatedAt:       docTime(f, "createdAt"),
	}
}
