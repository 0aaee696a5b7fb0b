package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okEmployeeHandler struct{ EmployeeHandler }

func (okEmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	response.Success(w, []string{})
}

type okPayrollHandler struct{ PayrollHandler }

func (okPayrollHandler) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	response.Success(w, []string{})
}

type okUserHandler struct{ UserHandler }

func (okUserHandler) ListHRUsers(w http.ResponseWriter, r *http.Request) {
	response.Success(w, []string{})
}

type stubLeaveService struct {
	leave.LeaveService
	balanceFor string
	balanceErr error
}

func (s *stubLeaveService) LeaveBalance(_ context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	s.balanceFor = employeeID
	return leave.BalanceResponse{EmployeeID: employeeID, Year: year}, s.balanceErr
}

func (s *stubLeaveService) LeaveReport(context.Context, leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	return []leave.LeaveResponse{}, nil
}

type stubAttendanceService struct {
	attendance.AttendanceService
	gotMonthly attendance.MonthlyReportRequest
}

func (s *stubAttendanceService) ExportMonthlyReport(_ context.Context, req attendance.MonthlyReportRequest) (attendance.Export, error) {
	s.gotMonthly = req
	if err := req.Validate(); err != nil {
		return attendance.Export{}, err
	}
	return attendance.Export{
		Filename:    "attendance-2024-03.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("PK-xlsx"),
	}, nil
}

type stubDashboardService struct {
	dashboard.DashboardService
	employeeCalls int
}

func (s *stubDashboardService) GetEmployeeDashboard(context.Context, string) (dashboard.EmployeeDashboardResponse, error) {
	s.employeeCalls++
	return dashboard.EmployeeDashboardResponse{}, nil
}

type routerFixture struct {
	handler    http.Handler
	jwt        *jwt.JWTService
	leaves     *stubLeaveService
	attendance *stubAttendanceService
	dashboard  *stubDashboardService
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	jwtSvc := jwt.NewJWTService("router-test-secret", time.Hour, 24*time.Hour, false)
	leaves := &stubLeaveService{}
	att := &stubAttendanceService{}
	dash := &stubDashboardService{}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	router := NewRouter(logger, RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}}, jwtSvc, Handlers{
		Auth:       NewAuthHandler(jwtSvc, &stubAuthService{}, frontendURL),
		User:       okUserHandler{},
		Employee:   okEmployeeHandler{},
		Payroll:    okPayrollHandler{},
		Leave:      NewLeaveHandler(leaves),
		Attendance: NewAttendanceHandler(att, time.UTC),
		Master:     NewMasterHandler(nil),
		Schedule:   NewScheduleHandler(nil),
		Calendar:   NewCalendarHandler(nil, nil),
		Dashboard:  NewDashboardHandler(dash),
		Audit:      NewAuditHandler(nil),
	})

	return routerFixture{handler: router, jwt: jwtSvc, leaves: leaves, attendance: att, dashboard: dash}
}

func (f routerFixture) token(t *testing.T, role user.Role, employeeID *string) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken("user-"+string(role), string(role)+"@example.com", employeeID, role)
	require.NoError(t, err)
	return token
}

func (f routerFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Permissions(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		name string
		path string
		role user.Role
		want int
	}{
		{name: "employees as employee", path: "/api/v1/employees", role: user.RoleEmployee, want: http.StatusForbidden},
		{name: "employees as hr", path: "/api/v1/employees", role: user.RoleHR, want: http.StatusOK},
		{name: "payrolls as hr", path: "/api/v1/payrolls", role: user.RoleHR, want: http.StatusForbidden},
		{name: "payrolls as payroll", path: "/api/v1/payrolls", role: user.RolePayroll, want: http.StatusOK},
		{name: "hr users as admin", path: "/api/v1/hr-users", role: user.RoleAdmin, want: http.StatusForbidden},
		{name: "hr users as superadmin", path: "/api/v1/hr-users", role: user.RoleSuperAdmin, want: http.StatusOK},
		{name: "leave report as employee", path: "/api/v1/leaves/report", role: user.RoleEmployee, want: http.StatusForbidden},
		{name: "leave report as hr", path: "/api/v1/leaves/report", role: user.RoleHR, want: http.StatusOK},
		{name: "attendance export as payroll", path: "/api/v1/attendances/reports/monthly/export", role: user.RolePayroll, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.get(tt.path, f.token(t, tt.role, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	t.Run("no token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.get("/api/v1/employees", "").Code)
	})

	t.Run("heartbeat", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, f.get("/", "").Code)
	})
}

func TestRouter_LeaveBalanceDefaultsToOwnEmployee(t *testing.T) {
	f := newRouterFixture(t)
	employeeID := "emp-7"

	rec := f.get("/api/v1/leaves/balance", f.token(t, user.RoleEmployee, &employeeID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp-7", f.leaves.balanceFor)
}

func TestRouter_LeaveBalanceWithoutEmployee(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.get("/api/v1/leaves/balance", f.token(t, user.RoleAdmin, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.leaves.balanceFor)
}

func TestRouter_AttendanceExport(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, user.RoleModerator, nil)

	rec := f.get("/api/v1/attendances/reports/monthly/export?year=2024&month=3", token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance-2024-03.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, "PK-xlsx", rec.Body.String())
	assert.Equal(t, 2024, f.attendance.gotMonthly.Year)
	assert.Equal(t, 3, f.attendance.gotMonthly.Month)

	t.Run("bad month", func(t *testing.T) {
		rec := f.get("/api/v1/attendances/reports/monthly/export?year=2024&month=13", token)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("non numeric year", func(t *testing.T) {
		rec := f.get("/api/v1/attendances/reports/monthly/export?year=abc", token)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestRouter_EmployeeDashboardMalformedID(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, user.RoleHR, nil)

	rec := f.get("/api/v1/dashboard/employees/abc", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, f.dashboard.employeeCalls)

	rec = f.get("/api/v1/dashboard/employees/0190b1a4-6c1e-7d2a-9f3b-1a2b3c4d5e6f", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.dashboard.employeeCalls)
}
