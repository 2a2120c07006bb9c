package employees

import (
	"context"

	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Employee) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) (*models.Employee, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Employee, error)
	Delete(ctx context.Context, id string) (*models.Employee, error)
}
