package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/audit"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/cache"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/config"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/handlers"
	infraRepo "github.com/SilkSkinClinic/clinic-scheduler/internal/infra/repository"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	ucCalendar "github.com/SilkSkinClinic/clinic-scheduler/internal/usecase/calendar"
	ucTreatment "github.com/SilkSkinClinic/clinic-scheduler/internal/usecase/treatment"
)

const viewCacheTTL = 5 * time.Minute

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	treatmentRepo := infraRepo.NewTreatmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	viewCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, viewCacheTTL)

	workflowRegistry := ucTreatment.NewRegistry()

	// ======================================================
	// USE CASES
	// ======================================================
	scheduleAppointmentUC := ucTreatment.NewScheduleAppointment(
		treatmentRepo,
		auditDispatcher,
	)

	browseCalendarUC := ucCalendar.NewBrowse(treatmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)

	clientHandler := handlers.NewClientHandler(db, treatmentRepo)
	bodyAreaHandler := handlers.NewBodyAreaHandler(db)
	planHandler := handlers.NewPlanHandler(db)
	staffHandler := handlers.NewStaffHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		treatmentRepo,
		scheduleAppointmentUC,
		browseCalendarUC,
		viewCache,
	)

	workflowHandler := handlers.NewWorkflowHandler(
		treatmentRepo,
		auditDispatcher,
		workflowRegistry,
		viewCache,
	)

	dashboardHandler := handlers.NewDashboardHandler(db, viewCache)
	reportHandler := handlers.NewReportHandler(db, viewCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/me/clinic", clinicHandler.UpdateMeClinic)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.GET("/me/clients/:id/history", clientHandler.History)

			secured.GET("/me/body-areas", bodyAreaHandler.List)
			secured.POST("/me/body-areas", bodyAreaHandler.Create)
			secured.PATCH("/me/body-areas/:id", bodyAreaHandler.Update)

			secured.GET("/me/plans", planHandler.List)
			secured.POST("/me/plans", planHandler.Create)
			secured.PATCH("/me/plans/:id", planHandler.Update)

			secured.GET("/me/staff", staffHandler.List)
			secured.PATCH("/me/staff/:id/color", staffHandler.UpdateColor)

			// ------------------------------
			// APPOINTMENTS / CALENDAR
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.GET("/me/calendar", appointmentHandler.Calendar)

			// ------------------------------
			// TREATMENT WORKFLOW
			// ------------------------------
			secured.POST("/me/appointments/:id/workflow", workflowHandler.Start)
			secured.GET("/me/workflows/:token", workflowHandler.State)
			secured.DELETE("/me/workflows/:token", workflowHandler.Abandon)
			secured.PUT("/me/workflows/:token/mode", workflowHandler.SetAreaMode)
			secured.PUT("/me/workflows/:token/areas/:index", workflowHandler.UpdateArea)
			secured.POST("/me/workflows/:token/areas", workflowHandler.AddArea)
			secured.POST("/me/workflows/:token/advance", workflowHandler.Advance)
			secured.POST("/me/workflows/:token/retreat", workflowHandler.Retreat)
			secured.PUT("/me/workflows/:token/payment", workflowHandler.SetPayment)
			secured.PUT("/me/workflows/:token/reminder", workflowHandler.SetReminder)
			secured.PUT("/me/workflows/:token/notes", workflowHandler.SetNotes)
			secured.POST("/me/workflows/:token/commit", workflowHandler.Commit)

			// ------------------------------
			// DASHBOARD / REPORTS
			// ------------------------------
			secured.GET("/me/dashboard", dashboardHandler.Summary)
			secured.GET("/me/reports", reportHandler.Summary)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
