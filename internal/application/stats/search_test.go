package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicbook/admin-console/internal/application/stats"
	"github.com/clinicbook/admin-console/internal/domain/entities"
)

func TestFilterAppointments_SubstringMatch(t *testing.T) {
	appointments := []*entities.Appointment{
		{ID: "a1", PatientName: "Ahmad Hossain", Status: entities.AppointmentPending},
		{ID: "a2", PatientName: "Sara Rahman", DoctorName: "Dr. Ahmadi", Status: entities.AppointmentConfirmed},
		{ID: "a3", PatientName: "Nadia Islam", PatientPhone: "+8801711", Status: entities.AppointmentPending},
	}

	// Case-insensitive substring across patient name, doctor name and phone.
	got := stats.FilterAppointments(appointments, "ahm", "")
	assert.Len(t, got, 2)

	got = stats.FilterAppointments(appointments, "8801711", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "a3", got[0].ID)
}

func TestFilterAppointments_StatusRestriction(t *testing.T) {
	appointments := []*entities.Appointment{
		{ID: "a1", PatientName: "Ahmad", Status: entities.AppointmentPending},
		{ID: "a2", PatientName: "Ahmad", Status: entities.AppointmentConfirmed},
	}

	got := stats.FilterAppointments(appointments, "ahmad", entities.AppointmentConfirmed)
	assert.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].ID)

	// An empty status matches everything.
	got = stats.FilterAppointments(appointments, "", "")
	assert.Len(t, got, 2)
}

func TestFilterDoctors_Tabs(t *testing.T) {
	doctors := []*entities.Doctor{
		{ID: "d1", Name: "Dr. Karim", VerificationStatus: entities.VerificationApproved, IsAvailable: true},
		{ID: "d2", Name: "Dr. Rahim", VerificationStatus: entities.VerificationPending},
		{ID: "d3", Name: "Dr. Salam", VerificationStatus: entities.VerificationRejected, IsAvailable: true},
	}

	assert.Len(t, stats.FilterDoctors(doctors, "", stats.FilterAll), 3)
	assert.Len(t, stats.FilterDoctors(doctors, "", stats.FilterPending), 1)
	assert.Len(t, stats.FilterDoctors(doctors, "", stats.FilterApproved), 1)
	assert.Len(t, stats.FilterDoctors(doctors, "", stats.FilterRejected), 1)
	assert.Len(t, stats.FilterDoctors(doctors, "", stats.FilterAvailable), 2)
}

func TestFilterDoctors_QueryFields(t *testing.T) {
	doctors := []*entities.Doctor{
		{ID: "d1", Name: "Dr. Karim", Specialty: "Cardiology", Email: "karim@clinic.example"},
		{ID: "d2", Name: "Dr. Rahim", Specialty: "Dermatology", Email: "rahim@clinic.example"},
	}

	got := stats.FilterDoctors(doctors, "cardio", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
}

func TestFilterReviews_ApprovalStates(t *testing.T) {
	reviews := []*entities.Review{
		{ID: "r1", Comment: "great doctor", IsApproved: true},
		{ID: "r2", Comment: "waited too long", IsApproved: false},
	}

	assert.Len(t, stats.FilterReviews(reviews, "", stats.FilterAll), 2)

	pending := stats.FilterReviews(reviews, "", stats.FilterPending)
	assert.Len(t, pending, 1)
	assert.Equal(t, "r2", pending[0].ID)

	approved := stats.FilterReviews(reviews, "", stats.FilterApproved)
	assert.Len(t, approved, 1)
	assert.Equal(t, "r1", approved[0].ID)
}

func TestFilterUsers(t *testing.T) {
	users := []*entities.User{
		{ID: "u1", Name: "Nadia Islam", Email: "nadia@example.com"},
		{ID: "u2", Name: "Omar Faruk", Phone: "+88017"},
	}

	got := stats.FilterUsers(users, "NADIA")
	assert.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].ID)

	assert.Len(t, stats.FilterUsers(users, ""), 2)
}
