package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Employee   EmployeeHandler
	Master     MasterHandler
	Schedule   ScheduleHandler
	Calendar   CalendarHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
	Audit      AuditHandler
}

type RouterConfig struct {
	AllowedOrigins []string
	// UploadsDir is served read-only under /uploads when set.
	UploadsDir string
	LogLevel   slog.Level
}

func NewRouter(logger *slog.Logger, cfg RouterConfig, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(middleware.ClientIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Put("/auth/password", h.Auth.ChangePassword)

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionDashboardView))
				r.Get("/", h.Dashboard.GetDashboard)
				r.Get("/employees/{id}", h.Dashboard.GetEmployeeDashboard)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/", h.User.ListUsers)
				r.Post("/", h.User.CreateUser)
				r.Post("/from-employee", h.User.CreateFromEmployee)
				r.Get("/{id}", h.User.GetUser)
				r.Put("/{id}", h.User.UpdateUser)
				r.Delete("/{id}", h.User.DeleteUser)
			})

			r.Route("/hr-users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionHRManage))
				r.Get("/", h.User.ListHRUsers)
				r.Post("/", h.User.CreateHRUser)
				r.Patch("/{id}/deactivate", h.User.DeactivateHRUser)
			})

			r.With(middleware.RequirePermission(user.PermissionUserManage)).Get("/audit-logs", h.Audit.ListLogs)

			// Employee and master data
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Get("/{id}", h.Employee.GetEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
					r.Post("/{id}/image", h.Employee.UploadImage)
				})

				r.Route("/departments", func(r chi.Router) {
					r.Get("/", h.Master.ListDepartments)
					r.Post("/", h.Master.CreateDepartment)
					r.Get("/{id}", h.Master.GetDepartment)
					r.Put("/{id}", h.Master.UpdateDepartment)
					r.Delete("/{id}", h.Master.DeleteDepartment)
				})

				r.Route("/designations", func(r chi.Router) {
					r.Get("/", h.Master.ListDesignations)
					r.Post("/", h.Master.CreateDesignation)
					r.Get("/{id}", h.Master.GetDesignation)
					r.Put("/{id}", h.Master.UpdateDesignation)
					r.Delete("/{id}", h.Master.DeleteDesignation)
				})

				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", h.Schedule.ListSchedules)
					r.Post("/", h.Schedule.CreateSchedule)
					r.Get("/{id}", h.Schedule.GetSchedule)
					r.Put("/{id}", h.Schedule.UpdateSchedule)
					r.Delete("/{id}", h.Schedule.DeleteSchedule)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionCalendarManage))
				r.Get("/working-days", h.Calendar.ListWorkingDays)
				r.Patch("/working-days/{weekday}", h.Calendar.ToggleWorkingDay)

				r.Get("/holidays", h.Calendar.ListHolidays)
				r.Post("/holidays", h.Calendar.CreateHoliday)
				r.Get("/holidays/{id}", h.Calendar.GetHoliday)
				r.Put("/holidays/{id}", h.Calendar.UpdateHoliday)
				r.Delete("/holidays/{id}", h.Calendar.DeleteHoliday)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveViewOwn))
				r.Get("/", h.Leave.ListLeaves)
				r.Get("/balance", h.Leave.LeaveBalance)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateLeave)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/report", h.Leave.LeaveReport)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Leave.GetLeave)
					r.Put("/", h.Leave.UpdateLeave)
					r.Delete("/", h.Leave.DeleteLeave)
					r.With(middleware.RequirePermission(user.PermissionLeaveProcess)).Post("/process", h.Leave.ProcessLeave)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
				r.Get("/", h.Attendance.ListByDate)
				r.Post("/", h.Attendance.CreateAttendance)
				r.Get("/board", h.Attendance.Board)
				r.Post("/check", h.Attendance.Check)
				r.Post("/generate", h.Attendance.Generate)
				r.Get("/reports/monthly", h.Attendance.MonthlyReport)
				r.Get("/reports/monthly/export", h.Attendance.ExportMonthlyReport)
				r.Get("/reports/range", h.Attendance.RangeReport)
				r.Get("/{id}", h.Attendance.GetAttendance)
				r.Put("/{id}", h.Attendance.UpdateAttendance)
				r.Delete("/{id}", h.Attendance.DeleteAttendance)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollManage))

				r.Route("/salaries", func(r chi.Router) {
					r.Get("/", h.Payroll.ListSalaries)
					r.Get("/{employeeID}", h.Payroll.GetSalary)
					r.Put("/{employeeID}", h.Payroll.UpsertSalary)
				})

				r.Route("/payrolls", func(r chi.Router) {
					r.Get("/", h.Payroll.ListPayrolls)
					r.Post("/", h.Payroll.CreatePayroll)
					r.Post("/calculate", h.Payroll.CalculatePayroll)
					r.Get("/report", h.Payroll.PayrollReport)
					r.Get("/{id}", h.Payroll.GetPayroll)
					r.Patch("/{id}/paid", h.Payroll.MarkPaid)
					r.Delete("/{id}", h.Payroll.DeletePayroll)
				})
			})
		})
	})
	return r
}
