package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	appHTTP "github.com/aarambh-hq/attendance-backend-go/internal/handler/http"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/cron"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/database"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/email"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/geocode"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/oauth"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/sse"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/storage"
	"github.com/aarambh-hq/attendance-backend-go/internal/repository/postgresql"
	activityService "github.com/aarambh-hq/attendance-backend-go/internal/service/activity"
	attendanceService "github.com/aarambh-hq/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/aarambh-hq/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/aarambh-hq/attendance-backend-go/internal/service/dashboard"
	employeeService "github.com/aarambh-hq/attendance-backend-go/internal/service/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/service/file"
	reportService "github.com/aarambh-hq/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	geocodeClient := geocode.NewNominatimClient(cfg.Geocode)
	hub := sse.NewHub()

	activitySvc := activityService.NewActivityService(activityRepo, hub)
	authSvc := serviceAuth.NewAuthService(cfg, userRepo, employeeRepo, refreshTokenRepo, JWTService, emailService)
	attendanceSvc := attendanceService.NewAttendanceService(
		cfg,
		attendanceRepo,
		employeeRepo,
		fileService,
		geocodeClient,
		activitySvc,
	)
	employeeSvc := employeeService.NewEmployeeService(
		db,
		userRepo,
		employeeRepo,
		attendanceRepo,
		fileService,
		activitySvc,
	)
	reportSvc := reportService.NewReportService(cfg, attendanceRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(cfg, employeeRepo, attendanceRepo, activitySvc)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc, activitySvc, JWTService, hub)

	attendanceJobs := cron.NewAttendanceJobs(cfg, attendanceRepo)
	scheduler := cron.NewScheduler()
	scheduler.AddJob("auto-close-stale-sessions", time.Hour, attendanceJobs.AutoCloseStaleSessions)
	scheduler.Start()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		attendanceHandler,
		employeeHandler,
		reportHandler,
		dashboardHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
