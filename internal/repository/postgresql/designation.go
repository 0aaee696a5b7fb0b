package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

// Create implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Create(ctx context.Context, v designation.Designation) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return designation.Designation{}, err
	}

	query := `
		INSERT INTO designations (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, created_at, updated_at
	`

	var result designation.Designation
	err = q.QueryRow(ctx, query, id, v.Name, v.Description).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return designation.Designation{}, designation.ErrDesignationNameExists
		}
		return designation.Designation{}, fmt.Errorf("failed to create designation: %w", err)
	}

	return result, nil
}

// GetByID implements designation.DesignationRepository.
func (r *designationRepositoryImpl) GetByID(ctx context.Context, id string) (designation.Designation, error) {
	if !validator.IsValidUUID(id) {
		return designation.Designation{}, designation.ErrDesignationNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, d.description, d.created_at, d.updated_at,
			(SELECT COUNT(*) FROM employees e WHERE e.designation_id = d.id)
		FROM designations d
		WHERE d.id = $1
	`

	var result designation.Designation
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.EmployeeCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		return designation.Designation{}, fmt.Errorf("failed to get designation: %w", err)
	}

	return result, nil
}

// List implements designation.DesignationRepository.
func (r *designationRepositoryImpl) List(ctx context.Context) ([]designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, d.description, d.created_at, d.updated_at,
			(SELECT COUNT(*) FROM employees e WHERE e.designation_id = d.id)
		FROM designations d
		ORDER BY d.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}
	defer rows.Close()

	results := make([]designation.Designation, 0)
	for rows.Next() {
		var d designation.Designation
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCount); err != nil {
			return nil, fmt.Errorf("failed to scan designation: %w", err)
		}
		results = append(results, d)
	}

	return results, rows.Err()
}

// ExistsByName implements designation.DesignationRepository.
func (r *designationRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM designations WHERE LOWER(name) = LOWER($1) AND ($2::uuid IS NULL OR id <> $2::uuid))`

	var exists bool
	if err := q.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check designation name: %w", err)
	}
	return exists, nil
}

// Update implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Update(ctx context.Context, v designation.Designation) (designation.Designation, error) {
	if !validator.IsValidUUID(v.ID) {
		return designation.Designation{}, designation.ErrDesignationNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE designations
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, description, created_at, updated_at
	`

	var result designation.Designation
	err := q.QueryRow(ctx, query, v.Name, v.Description, v.ID).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		if isUniqueViolation(err) {
			return designation.Designation{}, designation.ErrDesignationNameExists
		}
		return designation.Designation{}, fmt.Errorf("failed to update designation: %w", err)
	}

	return result, nil
}

// Delete implements designation.DesignationRepository. Employees keep their row with no designation.
func (r *designationRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return designation.ErrDesignationNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM designations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete designation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}
