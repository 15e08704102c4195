package handlers

import (
	"context"

	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/models"
	"github.com/justsurfingit/jobly-api/internal/services"
)

// JobStore is implemented by *services.JobService.
type JobStore interface {
	Create(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error)
	FindAll(ctx context.Context, filter services.JobFilter) ([]models.JobListing, error)
	Get(ctx context.Context, id int) (*models.JobDetail, error)
	Update(ctx context.Context, id int, changes map[string]any) (*models.Job, error)
	Remove(ctx context.Context, id int) error
}

// CompanyStore is implemented by *services.CompanyService.
type CompanyStore interface {
	Create(ctx context.Context, req *dtos.CompanyCreationRequest) (*models.Company, error)
	FindAll(ctx context.Context, filter services.CompanyFilter) ([]models.Company, error)
	Get(ctx context.Context, handle string) (*models.CompanyDetail, error)
	Update(ctx context.Context, handle string, changes map[string]any) (*models.Company, error)
	Remove(ctx context.Context, handle string) error
}

// UserStore is implemented by *services.UserService.
type UserStore interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, req *dtos.UserRegisterRequest, isAdmin bool) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, changes map[string]any) (*models.User, error)
	Remove(ctx context.Context, username string) error
}

var (
	_ JobStore     = (*services.JobService)(nil)
	_ CompanyStore = (*services.CompanyService)(nil)
	_ UserStore    = (*services.UserService)(nil)
)
