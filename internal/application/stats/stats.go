// Package stats is the derived-aggregates layer: pure functions over current
// projections. Nothing here touches the store or has side effects.
package stats

import (
	"math"
	"time"

	"github.com/clinicbook/admin-console/internal/domain/entities"
)

// Dashboard holds the badge counts and composite statistics shown on the
// console's landing view.
type Dashboard struct {
	TotalDoctors        int     `json:"totalDoctors"`
	PendingDoctors      int     `json:"pendingDoctors"`
	TotalAppointments   int     `json:"totalAppointments"`
	TodayAppointments   int     `json:"todayAppointments"`
	PendingAppointments int     `json:"pendingAppointments"`
	TotalUsers          int     `json:"totalUsers"`
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalReviews        int     `json:"totalReviews"`
	PendingReviews      int     `json:"pendingReviews"`
	AverageRating       float64 `json:"averageRating"`
}

// ComputeDashboard derives the dashboard statistics from the current
// projections. now anchors the caller's local calendar day.
func ComputeDashboard(
	doctors []*entities.Doctor,
	appointments []*entities.Appointment,
	reviews []*entities.Review,
	users []*entities.User,
	now time.Time,
) Dashboard {
	d := Dashboard{
		TotalDoctors:      len(doctors),
		TotalAppointments: len(appointments),
		TotalUsers:        len(users),
		TotalReviews:      len(reviews),
	}

	for _, doc := range doctors {
		if doc.VerificationStatus == entities.VerificationPending {
			d.PendingDoctors++
		}
	}

	d.TodayAppointments = CountToday(appointments, now)
	d.TotalRevenue = TotalRevenue(appointments)
	for _, a := range appointments {
		if a.Status == entities.AppointmentPending || a.Status == entities.AppointmentAwaitingApproval {
			d.PendingAppointments++
		}
	}

	for _, r := range reviews {
		if !r.IsApproved {
			d.PendingReviews++
		}
	}
	d.AverageRating = AverageRating(reviews)

	return d
}

// AppointmentStatusCounts counts appointments per status, for filter-tab
// badges.
func AppointmentStatusCounts(appointments []*entities.Appointment) map[entities.AppointmentStatus]int {
	counts := make(map[entities.AppointmentStatus]int, len(entities.AppointmentStatuses))
	for _, a := range appointments {
		counts[a.Status]++
	}
	return counts
}

// VerificationStatusCounts counts doctors per verification status.
func VerificationStatusCounts(doctors []*entities.Doctor) map[entities.VerificationStatus]int {
	counts := make(map[entities.VerificationStatus]int, 3)
	for _, d := range doctors {
		counts[d.VerificationStatus]++
	}
	return counts
}

// ReviewApprovalCounts counts approved and pending reviews.
func ReviewApprovalCounts(reviews []*entities.Review) (approved, pending int) {
	for _, r := range reviews {
		if r.IsApproved {
			approved++
		} else {
			pending++
		}
	}
	return approved, pending
}

// TotalRevenue sums fees strictly over completed appointments.
func TotalRevenue(appointments []*entities.Appointment) float64 {
	var revenue float64
	for _, a := range appointments {
		if a.Status == entities.AppointmentCompleted {
			revenue += a.Fee
		}
	}
	return revenue
}

// CountToday counts appointments falling within now's local calendar day.
func CountToday(appointments []*entities.Appointment, now time.Time) int {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	count := 0
	for _, a := range appointments {
		t := a.AppointmentDate.In(now.Location())
		if !t.Before(dayStart) && t.Before(dayEnd) {
			count++
		}
	}
	return count
}

// AverageRating averages across ALL reviews, approved or not, rounded to one
// decimal. This intentionally differs from the per-doctor rating
// recomputation, which counts approved reviews only.
func AverageRating(reviews []*entities.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var total float64
	for _, r := range reviews {
		total += float64(r.Rating)
	}
	return math.Round(total/float64(len(reviews))*10) / 10
}

// NewUsersThisMonth counts users registered in now's calendar month.
func NewUsersThisMonth(users []*entities.User, now time.Time) int {
	count := 0
	for _, u := range users {
		if u.CreatedAt.IsZero() {
			continue
		}
		t := u.CreatedAt.In(now.Location())
		if t.Year() == now.Year() && t.Month() == now.Month() {
			count++
		}
	}
	return count
}
