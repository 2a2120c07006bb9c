package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/server/images"
	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/staffkeeper/internal/shared"
)

// CreateEmployeeInput carries the caller-supplied fields for a new record.
// The image arrives separately as a staged local file.
type CreateEmployeeInput struct {
	Name        string
	Email       string
	MobileNo    string
	Designation string
	Gender      string
	Course      []string
}

// UpdateEmployeeInput is a partial update: nil pointers (and a nil Course
// slice) mean "leave unchanged".
type UpdateEmployeeInput struct {
	Name        *string
	Email       *string
	MobileNo    *string
	Designation *string
	Gender      *string
	Course      []string
}

// EmployeeService owns the directory record lifecycle. Every mutation builds
// the full post-mutation record and passes it through models.ValidateEmployee
// before anything is persisted.
type EmployeeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       images.Store
	logger      logging.Logger
}

func NewEmployeeService(db *sql.DB, m repomanager.RepositoryManager, store images.Store, l logging.Logger) *EmployeeService {
	return &EmployeeService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      l.With("module", "employee_service"),
	}
}

// compensateUpload removes an object that was uploaded for a mutation that
// subsequently failed to persist. Best effort: a failed delete only logs,
// the original error is what the caller sees.
func (s *EmployeeService) compensateUpload(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Error(ctx, "failed to delete orphaned image", "key", key, "error", err.Error())
	}
}

// Add uploads the staged image, then persists a new employee referencing the
// durable URL. If validation or persistence fails after the upload, the
// uploaded object is deleted again.
func (s *EmployeeService) Add(ctx context.Context, in CreateEmployeeInput, imagePath string) (*models.Employee, error) {
	repo := s.repomanager.Employees(s.db)

	obj, err := s.store.Upload(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("error uploading image: %w", err)
	}

	e := &models.Employee{
		Name:        in.Name,
		Email:       in.Email,
		MobileNo:    in.MobileNo,
		Designation: in.Designation,
		Gender:      in.Gender,
		Course:      in.Course,
		ImgUpload:   obj.URL,
		Status:      models.StatusActive,
	}

	if err := models.ValidateEmployee(e); err != nil {
		s.compensateUpload(ctx, obj.Key)
		return nil, err
	}

	created, err := repo.Create(ctx, e)
	if err != nil {
		s.compensateUpload(ctx, obj.Key)
		return nil, err
	}

	return created, nil
}

// List returns all directory records; order is whatever the store yields.
func (s *EmployeeService) List(ctx context.Context) ([]*models.Employee, error) {
	return s.repomanager.Employees(s.db).List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	return s.repomanager.Employees(s.db).GetByID(ctx, id)
}

// Update merges the supplied fields into the stored record. When imagePath
// is non-empty a new image is uploaded and replaces the old reference;
// otherwise the existing reference is kept untouched.
func (s *EmployeeService) Update(ctx context.Context, id string, in UpdateEmployeeInput, imagePath string) (*models.Employee, error) {
	repo := s.repomanager.Employees(s.db)

	e, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		e.Name = *in.Name
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.MobileNo != nil {
		e.MobileNo = *in.MobileNo
	}
	if in.Designation != nil {
		e.Designation = *in.Designation
	}
	if in.Gender != nil {
		e.Gender = *in.Gender
	}
	if in.Course != nil {
		e.Course = in.Course
	}

	var uploadedKey string
	if imagePath != "" {
		obj, err := s.store.Upload(ctx, imagePath)
		if err != nil {
			return nil, fmt.Errorf("error uploading image: %w", err)
		}
		e.ImgUpload = obj.URL
		uploadedKey = obj.Key
	}

	if err := models.ValidateEmployee(e); err != nil {
		if uploadedKey != "" {
			s.compensateUpload(ctx, uploadedKey)
		}
		return nil, err
	}

	updated, err := repo.Update(ctx, e)
	if err != nil {
		if uploadedKey != "" {
			s.compensateUpload(ctx, uploadedKey)
		}
		return nil, err
	}

	return updated, nil
}

// UpdateStatus overwrites only the status field. The id is checked
// syntactically before any lookup; the merged record still goes through the
// validation funnel so an invalid status can never be persisted.
func (s *EmployeeService) UpdateStatus(ctx context.Context, id, status string) (*models.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, shared.ErrorInvalidID
	}

	repo := s.repomanager.Employees(s.db)

	e, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Status = status
	if err := models.ValidateEmployee(e); err != nil {
		return nil, err
	}

	return repo.UpdateStatus(ctx, id, status)
}

// Delete removes the record permanently and returns its last state.
func (s *EmployeeService) Delete(ctx context.Context, id string) (*models.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, shared.ErrorInvalidID
	}

	deleted, err := s.repomanager.Employees(s.db).Delete(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error deleting employee: %v", err)
	}

	return deleted, nil
}
