package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicbook/admin-console/internal/application/stats"
	"github.com/clinicbook/admin-console/internal/domain/entities"
)

func TestTotalRevenue_CompletedOnly(t *testing.T) {
	appointments := []*entities.Appointment{
		{ID: "a1", Status: entities.AppointmentCompleted, Fee: 500},
		{ID: "a2", Status: entities.AppointmentConfirmed, Fee: 300},
		{ID: "a3", Status: entities.AppointmentCompleted, Fee: 700},
		{ID: "a4", Status: entities.AppointmentCancelled, Fee: 900},
	}

	assert.Equal(t, 1200.0, stats.TotalRevenue(appointments))
}

func TestTotalRevenue_DropsFeeWhenStatusLeavesCompleted(t *testing.T) {
	appointments := []*entities.Appointment{
		{ID: "a1", Status: entities.AppointmentCompleted, Fee: 500},
	}
	assert.Equal(t, 500.0, stats.TotalRevenue(appointments))

	// A raw status override away from completed removes the fee from revenue
	// on the next recomputation.
	appointments[0].Status = entities.AppointmentCancelled
	assert.Equal(t, 0.0, stats.TotalRevenue(appointments))
}

func TestCountToday(t *testing.T) {
	now := time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)

	appointments := []*entities.Appointment{
		{ID: "a1", AppointmentDate: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "a2", AppointmentDate: time.Date(2026, 5, 20, 23, 59, 59, 0, time.UTC)},
		{ID: "a3", AppointmentDate: time.Date(2026, 5, 21, 0, 0, 0, 0, time.UTC)},
		{ID: "a4", AppointmentDate: time.Date(2026, 5, 19, 23, 59, 59, 0, time.UTC)},
	}

	assert.Equal(t, 2, stats.CountToday(appointments, now))
}

func TestAverageRating_IncludesUnapprovedReviews(t *testing.T) {
	reviews := []*entities.Review{
		{ID: "r1", Rating: 5, IsApproved: true},
		{ID: "r2", Rating: 2, IsApproved: false},
	}

	// The dashboard average spans all reviews regardless of approval,
	// unlike the per-doctor rating.
	assert.Equal(t, 3.5, stats.AverageRating(reviews))
}

func TestAverageRating_Empty(t *testing.T) {
	assert.Equal(t, 0.0, stats.AverageRating(nil))
}

func TestAverageRating_Rounding(t *testing.T) {
	reviews := []*entities.Review{
		{ID: "r1", Rating: 5},
		{ID: "r2", Rating: 4},
		{ID: "r3", Rating: 4},
	}

	// 13/3 = 4.333... rounds to one decimal.
	assert.Equal(t, 4.3, stats.AverageRating(reviews))
}

func TestNewUsersThisMonth(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

	users := []*entities.User{
		{ID: "u1", CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "u2", CreatedAt: time.Date(2026, 4, 30, 23, 0, 0, 0, time.UTC)},
		{ID: "u3", CreatedAt: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "u4"}, // missing createdAt never counts
	}

	assert.Equal(t, 1, stats.NewUsersThisMonth(users, now))
}

func TestComputeDashboard(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

	doctors := []*entities.Doctor{
		{ID: "d1", VerificationStatus: entities.VerificationApproved},
		{ID: "d2", VerificationStatus: entities.VerificationPending},
		{ID: "d3", VerificationStatus: entities.VerificationPending},
	}
	appointments := []*entities.Appointment{
		{ID: "a1", Status: entities.AppointmentPending, AppointmentDate: now},
		{ID: "a2", Status: entities.AppointmentAwaitingApproval},
		{ID: "a3", Status: entities.AppointmentCompleted, Fee: 800},
	}
	reviews := []*entities.Review{
		{ID: "r1", Rating: 4, IsApproved: true},
		{ID: "r2", Rating: 2, IsApproved: false},
	}
	users := []*entities.User{
		{ID: "u1", CreatedAt: now},
	}

	d := stats.ComputeDashboard(doctors, appointments, reviews, users, now)

	assert.Equal(t, 3, d.TotalDoctors)
	assert.Equal(t, 2, d.PendingDoctors)
	assert.Equal(t, 3, d.TotalAppointments)
	assert.Equal(t, 1, d.TodayAppointments)
	assert.Equal(t, 2, d.PendingAppointments)
	assert.Equal(t, 1, d.TotalUsers)
	assert.Equal(t, 800.0, d.TotalRevenue)
	assert.Equal(t, 2, d.TotalReviews)
	assert.Equal(t, 1, d.PendingReviews)
	assert.Equal(t, 3.0, d.AverageRating)
}

func TestAppointmentStatusCounts(t *testing.T) {
	appointments := []*entities.Appointment{
		{Status: entities.AppointmentPending},
		{Status: entities.AppointmentPending},
		{Status: entities.AppointmentConfirmed},
	}

	counts := stats.AppointmentStatusCounts(appointments)
	assert.Equal(t, 2, counts[entities.AppointmentPending])
	assert.Equal(t, 1, counts[entities.AppointmentConfirmed])
	assert.Equal(t, 0, counts[entities.AppointmentRejected])
}
