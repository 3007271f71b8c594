package http

import (
	"net/http"

	"go-clinic-management/internal/delivery/http/handler"
	"go-clinic-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	historyHandler     *handler.HistoryHandler
	appointmentHandler *handler.AppointmentHandler
	specialtyHandler   *handler.SpecialtyHandler
	roleHandler        *handler.RoleHandler
	userHandler        *handler.UserHandler
	reportHandler      *handler.ReportHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	historyHandler *handler.HistoryHandler,
	appointmentHandler *handler.AppointmentHandler,
	specialtyHandler *handler.SpecialtyHandler,
	roleHandler *handler.RoleHandler,
	userHandler *handler.UserHandler,
	reportHandler *handler.ReportHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		patientHandler:     patientHandler,
		historyHandler:     historyHandler,
		appointmentHandler: appointmentHandler,
		specialtyHandler:   specialtyHandler,
		roleHandler:        roleHandler,
		userHandler:        userHandler,
		reportHandler:      reportHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
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
	authProtected.HandleFunc("/change-password", r.authHandler.ChangePassword).Methods(http.MethodPost)

	// Clinic routes (any authenticated staff)
	clinic := api.PathPrefix("").Subrouter()
	clinic.Use(r.authMiddleware.Authenticate)

	// Patients
	clinic.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	clinic.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	clinic.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	clinic.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	clinic.HandleFunc("/patients/{id}", r.patientHandler.DeactivatePatient).Methods(http.MethodDelete)

	// Clinical history
	clinic.HandleFunc("/patients/{id}/history", r.historyHandler.GetHistory).Methods(http.MethodGet)
	clinic.HandleFunc("/patients/{id}/history/entries", r.historyHandler.AddEntry).Methods(http.MethodPost)
	clinic.HandleFunc("/patients/{id}/history/entries/{entryId}", r.historyHandler.EditEntry).Methods(http.MethodPut)
	clinic.HandleFunc("/patients/{id}/history/entries/{entryId}", r.historyHandler.DeleteEntry).Methods(http.MethodDelete)
	clinic.HandleFunc("/patients/{id}/history/versions", r.historyHandler.ListVersions).Methods(http.MethodGet)
	clinic.HandleFunc("/patients/{id}/history/versions/{versionId}", r.historyHandler.GetVersion).Methods(http.MethodGet)

	// Appointments
	clinic.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	clinic.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	clinic.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	clinic.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)
	clinic.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	clinic.HandleFunc("/appointments/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Specialties (read is open to all staff, writes are admin-gated below)
	clinic.HandleFunc("/specialties", r.specialtyHandler.GetAllSpecialties).Methods(http.MethodGet)

	// Reports
	clinic.HandleFunc("/reports/patients", r.reportHandler.PatientRoster).Methods(http.MethodGet)
	clinic.HandleFunc("/reports/appointments", r.reportHandler.AppointmentLog).Methods(http.MethodGet)
	clinic.HandleFunc("/reports/appointments/{id}/ticket", r.reportHandler.AppointmentTicket).Methods(http.MethodGet)
	clinic.HandleFunc("/reports/patients/{id}/history", r.reportHandler.ClinicalHistory).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// User management
	admin.HandleFunc("/users", r.userHandler.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/toggle-active", r.userHandler.ToggleActive).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}/reset-password", r.userHandler.ResetPassword).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)

	// Role management
	admin.HandleFunc("/roles", r.roleHandler.CreateRole).Methods(http.MethodPost)
	admin.HandleFunc("/roles", r.roleHandler.GetAllRoles).Methods(http.MethodGet)
	admin.HandleFunc("/roles/{id}", r.roleHandler.UpdateRole).Methods(http.MethodPut)
	admin.HandleFunc("/roles/{id}", r.roleHandler.DeleteRole).Methods(http.MethodDelete)

	// Specialty management
	admin.HandleFunc("/specialties", r.specialtyHandler.CreateSpecialty).Methods(http.MethodPost)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.UpdateSpecialty).Methods(http.MethodPut)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.DeleteSpecialty).Methods(http.MethodDelete)

	// Admin reports and audit trail
	admin.HandleFunc("/reports/specialties", r.reportHandler.SpecialtyList).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
