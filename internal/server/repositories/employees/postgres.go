package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/staffkeeper/internal/dbx"
	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
	"github.com/dmitrijs2005/staffkeeper/internal/shared"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, name, email, mobile_no, designation, gender, courses, img_url, status, created_at, updated_at`

func scanEmployee(row interface{ Scan(dest ...any) error }) (*models.Employee, error) {
	e := &models.Employee{}
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.MobileNo, &e.Designation,
		&e.Gender, &e.Course, &e.ImgUpload, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {

	query :=
		`INSERT INTO employees (name, email, mobile_no, designation, gender, courses, img_url, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING ` + columns

	created, err := scanEmployee(r.db.QueryRowContext(ctx, query,
		e.Name, e.Email, e.MobileNo, e.Designation, e.Gender, e.Course, e.ImgUpload, e.Status))

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Employee, error) {

	query := `SELECT ` + columns + ` FROM employees`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {

	query := `SELECT ` + columns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {

	query :=
		`UPDATE employees
		 SET name = $2, email = $3, mobile_no = $4, designation = $5, gender = $6,
		     courses = $7, img_url = $8, status = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	updated, err := scanEmployee(r.db.QueryRowContext(ctx, query,
		e.ID, e.Name, e.Email, e.MobileNo, e.Designation, e.Gender, e.Course, e.ImgUpload, e.Status))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Employee, error) {

	query :=
		`UPDATE employees
		 SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	updated, err := scanEmployee(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (*models.Employee, error) {

	query := `DELETE FROM employees WHERE id = $1 RETURNING ` + columns

	deleted, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return deleted, nil
}
