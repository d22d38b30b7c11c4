package main

import (
	"log"
	"time"

	"juriscloud/config"
	"juriscloud/db"
	"juriscloud/handlers"
	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"
	"juriscloud/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Client{},
		&models.LegalCase{},
		&models.Task{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.Appointment{},
		&models.Document{},
		&models.Communication{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize object storage (R2 when configured, local filesystem otherwise)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes
	e.POST("/api/auth/signup", handlers.SignupHandler)
	e.POST("/api/auth/login", handlers.LoginHandler)
	e.POST("/api/auth/logout", handlers.LogoutHandler)

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/auth/me", handlers.MeHandler)

		api.GET("/dashboard", handlers.DashboardHandler)

		api.GET("/cases", handlers.ListCasesHandler)
		api.POST("/cases", handlers.CreateCaseHandler)
		api.GET("/cases/:id", handlers.GetCaseHandler)
		api.PUT("/cases/:id", handlers.UpdateCaseHandler)
		api.DELETE("/cases/:id", handlers.DeleteCaseHandler)

		api.GET("/cases/:id/documents", handlers.ListCaseDocumentsHandler)
		api.GET("/cases/:id/documents/checklist", handlers.CaseDocumentChecklistHandler)
		api.POST("/cases/:id/documents", handlers.UploadCaseDocumentHandler)
		api.GET("/documents/:id/download", handlers.DownloadDocumentHandler)
		api.DELETE("/documents/:id", handlers.DeleteDocumentHandler)

		api.GET("/clients", handlers.ListClientsHandler)
		api.POST("/clients", handlers.CreateClientHandler)
		api.GET("/clients/:id", handlers.GetClientHandler)
		api.PUT("/clients/:id", handlers.UpdateClientHandler)
		api.DELETE("/clients/:id", handlers.DeleteClientHandler)

		api.GET("/tasks", handlers.ListTasksHandler)
		api.POST("/tasks", handlers.CreateTaskHandler)
		api.GET("/tasks/:id", handlers.GetTaskHandler)
		api.PUT("/tasks/:id", handlers.UpdateTaskHandler)
		api.POST("/tasks/:id/complete", handlers.CompleteTaskHandler)
		api.DELETE("/tasks/:id", handlers.DeleteTaskHandler)

		api.GET("/invoices", handlers.ListInvoicesHandler)
		api.POST("/invoices", handlers.CreateInvoiceHandler)
		api.GET("/invoices/export", handlers.ExportInvoicesHandler)
		api.GET("/invoices/:id", handlers.GetInvoiceHandler)
		api.PUT("/invoices/:id", handlers.UpdateInvoiceHandler)
		api.POST("/invoices/:id/send", handlers.SendInvoiceHandler)
		api.POST("/invoices/:id/pay", handlers.PayInvoiceHandler)
		api.GET("/invoices/:id/pdf", handlers.InvoicePDFHandler)
		api.DELETE("/invoices/:id", handlers.DeleteInvoiceHandler)

		api.GET("/appointments", handlers.ListAppointmentsHandler)
		api.POST("/appointments", handlers.CreateAppointmentHandler)
		api.GET("/appointments/:id", handlers.GetAppointmentHandler)
		api.PUT("/appointments/:id", handlers.UpdateAppointmentHandler)
		api.DELETE("/appointments/:id", handlers.DeleteAppointmentHandler)

		api.GET("/communications", handlers.ListCommunicationsHandler)
		api.POST("/communications", handlers.CreateCommunicationHandler)
		api.DELETE("/communications/:id", handlers.DeleteCommunicationHandler)
	}

	// Background: hourly expired-session cleanup
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Session cleanup failed: %v", err)
			}
		}
	}()

	// Background: appointment reminders every 15 minutes
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			jobs.SendAppointmentReminders(db.DB, cfg)
		}
	}()

	// Start server
	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
