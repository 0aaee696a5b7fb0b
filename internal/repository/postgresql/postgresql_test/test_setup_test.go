package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hrms-backend-go/migrations"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps the connection used by the repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema. The
// test is skipped when no database is configured.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	require.NoError(t, migrations.Apply(ctx, db))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes test data but keeps the seeded lookup tables.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"payrolls",
		"salaries",
		"attendances",
		"leaves",
		"holidays",
		"audit_logs",
		"refresh_tokens",
		"users",
		"employees",
		"departments",
		"designations",
	}

	_, err := t.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", ")))
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

// createTestEmployee inserts an active employee with the given first name.
func createTestEmployee(t *testing.T, db *database.DB, firstName string) employee.Employee {
	t.Helper()

	e, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		FirstName: firstName,
		LastName:  "Tester",
		Status:    employee.StatusActive,
	})
	require.NoError(t, err)
	return e
}
