package employee

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memoryEmployees struct {
	employee.EmployeeRepository
	rows map[string]employee.Employee
	seq  int
}

func (m *memoryEmployees) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.seq++
	e.ID = fmt.Sprintf("emp-%d", m.seq)
	m.rows[e.ID] = e
	return e, nil
}

func (m *memoryEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memoryEmployees) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.rows[e.ID] = e
	return e, nil
}

func (m *memoryEmployees) UpdateImage(_ context.Context, id string, image string) error {
	e := m.rows[id]
	e.Image = &image
	m.rows[id] = e
	return nil
}

func (m *memoryEmployees) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryEmployees) exists(match func(employee.Employee) bool, excludeID *string) bool {
	for _, e := range m.rows {
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if match(e) {
			return true
		}
	}
	return false
}

func (m *memoryEmployees) ExistsByUniqueID(_ context.Context, uniqueID string, excludeID *string) (bool, error) {
	return m.exists(func(e employee.Employee) bool { return e.UniqueID != nil && *e.UniqueID == uniqueID }, excludeID), nil
}

func (m *memoryEmployees) ExistsByEmail(_ context.Context, email string, excludeID *string) (bool, error) {
	return m.exists(func(e employee.Employee) bool { return e.Email != nil && strings.EqualFold(*e.Email, email) }, excludeID), nil
}

type recordingUsers struct {
	user.UserService
	accounts []user.EmployeeAccount
}

func (r *recordingUsers) UpsertEmployeeAccount(_ context.Context, account user.EmployeeAccount) (user.UserResponse, error) {
	r.accounts = append(r.accounts, account)
	return user.UserResponse{Email: account.Email}, nil
}

type memoryFiles struct {
	file.FileService
	stored  map[string]bool
	deleted []string
}

func (m *memoryFiles) UploadEmployeeImage(_ context.Context, employeeID string, r io.Reader, filename string) (string, error) {
	if !strings.HasSuffix(filename, ".png") {
		return "", employee.ErrInvalidImageType
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	key := fmt.Sprintf("employees/%s/%d.jpg", employeeID, len(m.stored)+1)
	m.stored[key] = true
	return key, nil
}

func (m *memoryFiles) DeleteFile(_ context.Context, key string) error {
	delete(m.stored, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memoryFiles) GetFileURL(key string) string {
	return "http://localhost/uploads/" + key
}

type fixture struct {
	svc       employee.EmployeeService
	employees *memoryEmployees
	users     *recordingUsers
	files     *memoryFiles
}

func newFixture() fixture {
	f := fixture{
		employees: &memoryEmployees{rows: map[string]employee.Employee{}},
		users:     &recordingUsers{},
		files:     &memoryFiles{stored: map[string]bool{}},
	}
	f.svc = NewEmployeeService(inlineTx{}, f.employees, f.users, f.files)
	return f
}

func strPtr(s string) *string {
	return &s
}

func TestCreateEmployee(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateEmployee(context.Background(), employee.EmployeeRequest{FirstName: "Ann"})
		assert.Error(t, err)
		assert.Empty(t, f.employees.rows)
	})

	t.Run("duplicate unique id", func(t *testing.T) {
		f := newFixture()
		req := employee.EmployeeRequest{FirstName: "Ann", LastName: "Lee", UniqueID: strPtr("E-1")}
		_, err := f.svc.CreateEmployee(context.Background(), req)
		require.NoError(t, err)

		req.FirstName = "Bob"
		_, err = f.svc.CreateEmployee(context.Background(), req)
		assert.ErrorIs(t, err, employee.ErrUniqueIDExists)
	})

	t.Run("portal account falls back to unique id", func(t *testing.T) {
		f := newFixture()
		resp, err := f.svc.CreateEmployee(context.Background(), employee.EmployeeRequest{
			FirstName:      "Ann",
			LastName:       "Lee",
			UniqueID:       strPtr("E-7"),
			PortalPassword: strPtr("secret1"),
		})
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)

		require.Len(t, f.users.accounts, 1)
		assert.Equal(t, "e-7@employee.local", f.users.accounts[0].Email)
		assert.Equal(t, resp.ID, f.users.accounts[0].EmployeeID)
		assert.Equal(t, "Ann Lee", f.users.accounts[0].Name)
	})

	t.Run("no portal password means no account", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateEmployee(context.Background(), employee.EmployeeRequest{FirstName: "Ann", LastName: "Lee", Email: strPtr("ann@example.com")})
		require.NoError(t, err)
		assert.Empty(t, f.users.accounts)
	})
}

func TestUpdateEmployeeKeepsImage(t *testing.T) {
	f := newFixture()
	created, err := f.svc.CreateEmployee(context.Background(), employee.EmployeeRequest{FirstName: "Ann", LastName: "Lee", Email: strPtr("ann@example.com")})
	require.NoError(t, err)
	require.NoError(t, f.employees.UpdateImage(context.Background(), created.ID, "employees/x.jpg"))

	resp, err := f.svc.UpdateEmployee(context.Background(), employee.EmployeeRequest{
		ID:        created.ID,
		FirstName: "Anna",
		LastName:  "Lee",
		Email:     strPtr("ann@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna Lee", resp.FullName)
	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "http://localhost/uploads/employees/x.jpg", *resp.ImageURL)
}

func TestUploadImageReplacesPrevious(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.CreateEmployee(ctx, employee.EmployeeRequest{FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)

	first, err := f.svc.UploadImage(ctx, created.ID, strings.NewReader("a"), "a.png")
	require.NoError(t, err)
	second, err := f.svc.UploadImage(ctx, created.ID, strings.NewReader("b"), "b.png")
	require.NoError(t, err)

	assert.NotEqual(t, *first.Image, *second.Image)
	assert.Equal(t, []string{*first.Image}, f.files.deleted)

	_, err = f.svc.UploadImage(ctx, created.ID, strings.NewReader("c"), "c.gif")
	assert.ErrorIs(t, err, employee.ErrInvalidImageType)
}

func TestDeleteEmployeeRemovesImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.CreateEmployee(ctx, employee.EmployeeRequest{FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)
	uploaded, err := f.svc.UploadImage(ctx, created.ID, strings.NewReader("a"), "a.png")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEmployee(ctx, created.ID))
	assert.Empty(t, f.employees.rows)
	assert.Contains(t, f.files.deleted, *uploaded.Image)

	assert.ErrorIs(t, f.svc.DeleteEmployee(ctx, created.ID), employee.ErrEmployeeNotFound)
}
