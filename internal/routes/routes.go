package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/audit"
	"github.com/barberbook/booking-api/internal/handlers"
	"github.com/barberbook/booking-api/internal/identity"
	infraRepo "github.com/barberbook/booking-api/internal/infra/repository"
	"github.com/barberbook/booking-api/internal/middleware"
	ucBooking "github.com/barberbook/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, provider identity.Provider, verifier identity.Verifier, auditDispatcher *audit.Dispatcher) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	// ======================================================
	// USE CASES - BOOKING
	// ======================================================
	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
	)

	getAppointmentUC := ucBooking.NewGetAppointment(bookingRepo)

	listAppointmentsUC := ucBooking.NewListAppointments(bookingRepo)

	updateAppointmentUC := ucBooking.NewUpdateAppointment(
		bookingRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucBooking.NewDeleteAppointment(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, provider)
	userHandler := handlers.NewUserHandler(db, provider, auditDispatcher)
	barberHandler := handlers.NewBarberHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	threadHandler := handlers.NewThreadHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		getAppointmentUC,
		listAppointmentsUC,
		updateAppointmentUC,
		deleteAppointmentUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/token", authHandler.Token)
		api.POST("/users", userHandler.Create)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(verifier))
		{
			secured.GET("/auth/me", authHandler.Me)

			// ------------------------------
			// USERS
			// ------------------------------
			secured.GET("/users", middleware.RequireRole("admin"), userHandler.List)
			secured.GET("/users/search", userHandler.Search)
			secured.GET("/users/:id", userHandler.Get)
			secured.PUT("/users/:id", userHandler.Update)
			secured.PUT("/users/:id/password", userHandler.UpdatePassword)
			secured.DELETE("/users/:id", middleware.RequireRole("admin"), userHandler.Delete)

			// ------------------------------
			// BARBERS
			// ------------------------------
			secured.POST("/barbers", middleware.RequireRole("barber"), barberHandler.Create)
			secured.GET("/barbers", barberHandler.List)
			secured.GET("/barbers/:id", barberHandler.Get)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// SCHEDULES + TIME SLOTS
			// ------------------------------
			secured.POST("/schedules", scheduleHandler.Create)
			secured.GET("/schedules", scheduleHandler.List)
			secured.GET("/schedules/:id", scheduleHandler.Get)
			secured.PUT("/schedules/:id", scheduleHandler.Update)
			secured.DELETE("/schedules/:id", scheduleHandler.Delete)
			secured.POST("/schedules/:id/slots", scheduleHandler.CreateSlot)
			secured.GET("/schedules/:id/slots", scheduleHandler.ListSlots)
			secured.DELETE("/slots/:id", scheduleHandler.DeleteSlot)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// THREADS + MESSAGES
			// ------------------------------
			secured.POST("/threads", threadHandler.Create)
			secured.GET("/threads", threadHandler.List)
			secured.GET("/threads/:id/messages", threadHandler.ListMessages)
			secured.POST("/messages", threadHandler.CreateMessage)
			secured.PATCH("/messages/:id/active", threadHandler.UpdateMessageActive)
			secured.DELETE("/messages/:id", threadHandler.DeleteMessage)
		}
	}
}
