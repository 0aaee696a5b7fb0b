package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hrms-backend-go/internal/service/attendance"
	auditService "github.com/cmlabs-hris/hrms-backend-go/internal/service/audit"
	serviceAuth "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	calendarService "github.com/cmlabs-hris/hrms-backend-go/internal/service/calendar"
	dashboardService "github.com/cmlabs-hris/hrms-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/master"
	payrollService "github.com/cmlabs-hris/hrms-backend-go/internal/service/payroll"
	scheduleService "github.com/cmlabs-hris/hrms-backend-go/internal/service/schedule"
	userService "github.com/cmlabs-hris/hrms-backend-go/internal/service/user"
	"github.com/cmlabs-hris/hrms-backend-go/migrations"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*slog.Logger, slog.Level) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.App.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms"),
		slog.String("env", cfg.App.Env),
	)
	return logger, level
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, level := newLogger(cfg)
	slog.SetDefault(logger)
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db); err != nil {
		return err
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	workingDayRepo := postgresql.NewWorkingDayRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL(), cfg.App.IsProduction())

	var googleService oauth.GoogleService
	if cfg.GoogleEnabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	} else {
		slog.Info("Google login disabled, CLIENT_ID is not set")
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
	fileSvc := file.NewFileService(fileStorage)

	recorder := auditService.NewRecorder(auditRepo)
	userSvc := userService.NewUserService(userRepo, employeeRepo, recorder)
	authSvc := serviceAuth.NewAuthService(transactor, userRepo, employeeRepo, refreshTokenRepo, jwtService, googleService)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo, userSvc, fileSvc)
	masterSvc := master.NewMasterService(departmentRepo, designationRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo)
	calendarSvc := calendarService.NewCalendarService(workingDayRepo, holidayRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, calendarSvc, leaveRepo, loc)
	payrollSvc := payrollService.NewPayrollService(salaryRepo, payrollRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, leaveSvc, loc)

	router := appHTTP.NewRouter(logger, appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadsDir:     cfg.Storage.BasePath,
		LogLevel:       level,
	}, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, cfg.App.FrontendURL),
		User:       appHTTP.NewUserHandler(userSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Calendar:   appHTTP.NewCalendarHandler(calendarSvc, attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, loc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc, loc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Audit:      appHTTP.NewAuditHandler(auditRepo),
	})

	scheduler := cron.NewScheduler(loc, 10*time.Minute)
	if cfg.Cron.Enabled {
		jobs := cron.NewAttendanceJobs(attendanceSvc, loc)
		if err := jobs.RegisterJobs(scheduler, cfg.Cron.AttendanceSpec); err != nil {
			return fmt.Errorf("register cron jobs: %w", err)
		}
		scheduler.Start()
		if cfg.Cron.RunOnStart {
			go scheduler.RunOnce(ctx)
		}
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	return server.Shutdown(shutdownCtx)
}
