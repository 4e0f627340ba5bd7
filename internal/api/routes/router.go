package routes

import (
	"net/http"

	"github.com/clinicbook/admin-console/internal/api/handlers"
	"github.com/clinicbook/admin-console/internal/api/middleware"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	dashboardHandler *handlers.DashboardHandler

	streamHandler *handlers.StreamHandler

	appointmentHandler *handlers.AppointmentHandler

	doctorHandler *handlers.DoctorHandler

	reviewHandler *handlers.ReviewHandler

	userHandler *handlers.UserHandler

	adminHandler *handlers.AdminHandler

	auditHandler *handlers.AuditHandler
}

// NewRouter creates a new router

func NewRouter(

	dashboardHandler *handlers.DashboardHandler,

	streamHandler *handlers.StreamHandler,

	appointmentHandler *handlers.AppointmentHandler,

	doctorHandler *handlers.DoctorHandler,

	reviewHandler *handlers.ReviewHandler,

	userHandler *handlers.UserHandler,

	adminHandler *handlers.AdminHandler,

	auditHandler *handlers.AuditHandler,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		dashboardHandler: dashboardHandler,

		streamHandler: streamHandler,

		appointmentHandler: appointmentHandler,

		doctorHandler: doctorHandler,

		reviewHandler: reviewHandler,

		userHandler: userHandler,

		adminHandler: adminHandler,

		auditHandler: auditHandler,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Dashboard endpoints

	r.mux.HandleFunc("GET /api/dashboard", r.dashboardHandler.GetDashboard)

	r.mux.HandleFunc("GET /api/dashboard/recent", r.dashboardHandler.GetRecentActivity)

	r.mux.HandleFunc("GET /api/stream/dashboard", r.streamHandler.StreamDashboard)

	// Appointment endpoints

	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)

	r.mux.HandleFunc("GET /api/appointments/{id}", r.appointmentHandler.GetAppointment)

	r.mux.HandleFunc("POST /api/appointments/{id}/confirm", r.appointmentHandler.ConfirmAppointment)

	r.mux.HandleFunc("POST /api/appointments/{id}/reject", r.appointmentHandler.RejectAppointment)

	r.mux.HandleFunc("POST /api/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment)

	r.mux.HandleFunc("PUT /api/appointments/{id}/status", r.appointmentHandler.SetAppointmentStatus)

	// Doctor endpoints

	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.ListDoctors)

	r.mux.HandleFunc("POST /api/doctors", r.doctorHandler.CreateDoctor)

	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.GetDoctor)

	r.mux.HandleFunc("PUT /api/doctors/{id}", r.doctorHandler.UpdateDoctorProfile)

	r.mux.HandleFunc("DELETE /api/doctors/{id}", r.doctorHandler.DeleteDoctor)

	r.mux.HandleFunc("POST /api/doctors/{id}/approve", r.doctorHandler.ApproveDoctor)

	r.mux.HandleFunc("POST /api/doctors/{id}/reject", r.doctorHandler.RejectDoctor)

	r.mux.HandleFunc("POST /api/doctors/{id}/availability", r.doctorHandler.ToggleDoctorAvailability)

	// Review endpoints

	r.mux.HandleFunc("GET /api/reviews", r.reviewHandler.ListReviews)

	r.mux.HandleFunc("POST /api/reviews/{id}/approve", r.reviewHandler.ApproveReview)

	r.mux.HandleFunc("POST /api/reviews/{id}/disapprove", r.reviewHandler.DisapproveReview)

	r.mux.HandleFunc("DELETE /api/reviews/{id}", r.reviewHandler.DeleteReview)

	// User endpoints

	r.mux.HandleFunc("GET /api/users", r.userHandler.ListUsers)

	// Admin endpoints

	r.mux.HandleFunc("GET /api/admins", r.adminHandler.ListAdmins)

	// Audit endpoints

	r.mux.HandleFunc("GET /api/audit", r.auditHandler.ListAuditEvents)

	// Apply middleware chain

	var handler http.Handler = r.mux

	handler = middleware.ActorMiddleware(handler)

	handler = middleware.CORSMiddleware(handler)

	handler = middleware.LoggingMiddleware(handler)

	return handler

}
