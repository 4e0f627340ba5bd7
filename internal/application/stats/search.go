package stats

import (
	"strings"

	"github.com/clinicbook/admin-console/internal/domain/entities"
)

// Filter values shared by the list views. FilterAll matches everything.
const (
	FilterAll       = "all"
	FilterPending   = "pending"
	FilterApproved  = "approved"
	FilterRejected  = "rejected"
	FilterAvailable = "available"
)

// matches reports whether query is a case-insensitive substring of any field.
// An empty query matches everything.
func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FilterAppointments returns appointments whose patient name, doctor name or
// patient phone contains query, restricted to status when status is non-empty.
func FilterAppointments(appointments []*entities.Appointment, query string, status entities.AppointmentStatus) []*entities.Appointment {
	out := make([]*entities.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if !matches(query, a.PatientName, a.DoctorName, a.PatientPhone) {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterDoctors returns doctors whose name, specialty or email contains query,
// restricted by the given filter tab.
func FilterDoctors(doctors []*entities.Doctor, query, filter string) []*entities.Doctor {
	out := make([]*entities.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if !matches(query, d.Name, d.Specialty, d.Email) {
			continue
		}
		switch filter {
		case "", FilterAll:
		case FilterPending:
			if d.VerificationStatus != entities.VerificationPending {
				continue
			}
		case FilterApproved:
			if d.VerificationStatus != entities.VerificationApproved {
				continue
			}
		case FilterRejected:
			if d.VerificationStatus != entities.VerificationRejected {
				continue
			}
		case FilterAvailable:
			if !d.IsAvailable {
				continue
			}
		default:
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterReviews returns reviews whose patient name, doctor name or comment
// contains query, restricted by approval state when filter is pending or
// approved.
func FilterReviews(reviews []*entities.Review, query, filter string) []*entities.Review {
	out := make([]*entities.Review, 0, len(reviews))
	for _, r := range reviews {
		if !matches(query, r.PatientName, r.DoctorName, r.Comment) {
			continue
		}
		switch filter {
		case "", FilterAll:
		case FilterPending:
			if r.IsApproved {
				continue
			}
		case FilterApproved:
			if !r.IsApproved {
				continue
			}
		default:
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterUsers returns users whose name, email or phone contains query.
func FilterUsers(users []*entities.User, query string) []*entities.User {
	out := make([]*entities.User, 0, len(users))
	for _, u := range users {
		if matches(query, u.Name, u.Email, u.Phone) {
			out = append(out, u)
		}
	}
	return out
}
