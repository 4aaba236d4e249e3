package http

import (
	"net/http"

	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	appointmentHandler    *handler.AppointmentHandler
	recurrenceHandler     *handler.RecurrenceHandler
	availabilityHandler   *handler.AvailabilityHandler
	groupHandler          *handler.GroupHandler
	patientHandler        *handler.PatientHandler
	professionalHandler   *handler.ProfessionalHandler
	serviceCatalogHandler *handler.ServiceCatalogHandler
	auditLogHandler       *handler.AuditLogHandler
	jobsHandler           *handler.JobsHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	recurrenceHandler *handler.RecurrenceHandler,
	availabilityHandler *handler.AvailabilityHandler,
	groupHandler *handler.GroupHandler,
	patientHandler *handler.PatientHandler,
	professionalHandler *handler.ProfessionalHandler,
	serviceCatalogHandler *handler.ServiceCatalogHandler,
	auditLogHandler *handler.AuditLogHandler,
	jobsHandler *handler.JobsHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		appointmentHandler:    appointmentHandler,
		recurrenceHandler:     recurrenceHandler,
		availabilityHandler:   availabilityHandler,
		groupHandler:          groupHandler,
		patientHandler:        patientHandler,
		professionalHandler:   professionalHandler,
		serviceCatalogHandler: serviceCatalogHandler,
		auditLogHandler:       auditLogHandler,
		jobsHandler:           jobsHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Professional registration (admin only)
	registration := api.PathPrefix("/auth").Subrouter()
	registration.Use(r.authMiddleware.Authenticate)
	registration.Use(middleware.RequireAdmin)
	registration.HandleFunc("/register/professional", r.authHandler.RegisterProfessional).Methods(http.MethodPost)

	// Public appointment action links (token is the credential)
	public := r.router.PathPrefix("/public/appointments").Subrouter()
	public.HandleFunc("/confirm", r.appointmentHandler.ConfirmByToken).Methods(http.MethodGet)
	public.HandleFunc("/cancel", r.appointmentHandler.CancelByToken).Methods(http.MethodGet)

	// Staff routes (any authenticated clinic role)
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)

	// Appointments
	staff.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/recurring", r.appointmentHandler.CreateRecurring).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)
	staff.HandleFunc("/appointments/{id}/confirm", r.appointmentHandler.Confirm).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{id}/finalize", r.appointmentHandler.Finalize).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{id}/no-show", r.appointmentHandler.MarkNoShow).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Recurrences
	staff.HandleFunc("/recurrences/{id}", r.recurrenceHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/recurrences/{id}", r.recurrenceHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/recurrences/{id}/finalize", r.recurrenceHandler.Finalize).Methods(http.MethodPost)

	// Availability
	staff.HandleFunc("/availability/rules", r.availabilityHandler.SaveRules).Methods(http.MethodPut)
	staff.HandleFunc("/professionals/{professionalId}/availability/rules", r.availabilityHandler.ListRules).Methods(http.MethodGet)
	staff.HandleFunc("/availability/exceptions", r.availabilityHandler.CreateException).Methods(http.MethodPost)
	staff.HandleFunc("/professionals/{professionalId}/availability/exceptions", r.availabilityHandler.ListExceptions).Methods(http.MethodGet)
	staff.HandleFunc("/availability/exceptions/{id}", r.availabilityHandler.DeleteException).Methods(http.MethodDelete)

	// Therapy groups
	staff.HandleFunc("/groups", r.groupHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/groups", r.groupHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/groups/{id}", r.groupHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/groups/{id}/members", r.groupHandler.AddMember).Methods(http.MethodPost)
	staff.HandleFunc("/groups/{id}/members", r.groupHandler.RemoveMember).Methods(http.MethodDelete)
	staff.HandleFunc("/groups/{id}/generate-sessions", r.groupHandler.GenerateSessions).Methods(http.MethodPost)

	// Patients
	staff.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/patients", r.patientHandler.GetAll).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)

	// Professionals
	staff.HandleFunc("/professionals", r.professionalHandler.GetAll).Methods(http.MethodGet)
	staff.HandleFunc("/professionals/{id}", r.professionalHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/professionals/{id}", r.professionalHandler.UpdateProfile).Methods(http.MethodPut)

	// Service catalog reads are open to staff; writes are admin-scoped below
	staff.HandleFunc("/services", r.serviceCatalogHandler.GetAll).Methods(http.MethodGet)
	staff.HandleFunc("/services/{id}", r.serviceCatalogHandler.Get).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/services", r.serviceCatalogHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.serviceCatalogHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceCatalogHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.Get).Methods(http.MethodGet)

	// Maintenance jobs (admin; normally hit by a scheduler)
	jobs := api.PathPrefix("/jobs").Subrouter()
	jobs.Use(r.authMiddleware.Authenticate)
	jobs.Use(middleware.RequireAdmin)
	jobs.HandleFunc("/recurrences/extend", r.jobsHandler.ExtendRecurrences).Methods(http.MethodPost)
	jobs.HandleFunc("/reminders/send", r.jobsHandler.SendReminders).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
