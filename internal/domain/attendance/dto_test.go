package attendance

import (
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequest_Range(t *testing.T) {
	today := day(2024, 3, 8)

	t.Run("defaults to today", func(t *testing.T) {
		r := GenerateRequest{StartDate: "bogus"}
		start, end, err := r.Range(today)
		require.NoError(t, err)
		assert.Equal(t, today, start)
		assert.Equal(t, today, end)
	})

	t.Run("full leap year", func(t *testing.T) {
		r := GenerateRequest{StartDate: "2024-01-01", EndDate: "2024-12-31"}
		start, end, err := r.Range(today)
		require.NoError(t, err)
		assert.Equal(t, day(2024, 1, 1), start)
		assert.Equal(t, day(2024, 12, 31), end)
	})

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "inverted", start: "2024-03-06", end: "2024-03-04"},
		{name: "one day too long", start: "2024-01-01", end: "2025-01-01"},
		{name: "decades", start: "2000-01-01", end: "2024-03-08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := GenerateRequest{StartDate: tt.start, EndDate: tt.end}
			_, _, err := r.Range(today)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), "end_date")
		})
	}
}

func TestGenerateResult_Add(t *testing.T) {
	total := GenerateResult{StartDate: "2024-03-01", Employees: 3}
	total.Add(GenerateResult{Created: 2, Skipped: 1})
	total.Add(GenerateResult{Created: 1, Failed: 4, Employees: 9})

	assert.Equal(t, GenerateResult{StartDate: "2024-03-01", Employees: 3, Created: 3, Skipped: 1, Failed: 4}, total)
}
