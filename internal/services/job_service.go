package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/justsurfingit/jobly-api/internal/apperr"
	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/models"
	"github.com/justsurfingit/jobly-api/internal/sqlutil"
	"go.opentelemetry.io/otel/attribute"
)

// jobImmutable lists fields a job update may never touch.
var jobImmutable = []string{"id", "companyHandle"}

const jobColumns = `id, title, salary, equity::text, company_handle`

type JobService struct {
	DB Querier
}

func NewJobService(db Querier) *JobService {
	return &JobService{
		DB: db,
	}
}

// Create inserts a job. A company handle that does not exist is reported as
// not found.
func (s *JobService) Create(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	ctx, span := tracer.Start(ctx, "jobs.Create")
	defer span.End()

	const query = `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + jobColumns

	job, err := scanJob(s.DB.QueryRow(ctx, query, req.Title, req.Salary, req.Equity, req.CompanyHandle))
	if err != nil {
		switch pgCode(err) {
		case foreignKeyViolation:
			return nil, apperr.NotFound("No company: " + req.CompanyHandle)
		case checkViolation:
			return nil, apperr.BadRequest("Invalid job data")
		}
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

// FindAll returns the jobs matching filter, ordered by title.
func (s *JobService) FindAll(ctx context.Context, filter JobFilter) ([]models.JobListing, error) {
	ctx, span := tracer.Start(ctx, "jobs.FindAll")
	defer span.End()

	where, args := filter.Where()
	query := `
		SELECT j.id, j.title, j.salary, j.equity::text, j.company_handle, c.name
		  FROM jobs AS j
		  LEFT JOIN companies AS c ON c.handle = j.company_handle` + where + `
		 ORDER BY j.title, j.id`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JobListing, error) {
		var j models.JobListing
		var companyName *string
		err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle, &companyName)
		if companyName != nil {
			j.CompanyName = *companyName
		}
		return j, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}
	if jobs == nil {
		jobs = []models.JobListing{}
	}

	span.SetAttributes(attribute.Int("jobs.count", len(jobs)))
	return jobs, nil
}

// Get returns a job with its company embedded.
func (s *JobService) Get(ctx context.Context, id int) (*models.JobDetail, error) {
	ctx, span := tracer.Start(ctx, "jobs.Get")
	defer span.End()
	span.SetAttributes(attribute.Int("job.id", id))

	const query = `
		SELECT j.id, j.title, j.salary, j.equity::text, j.company_handle,
		       c.handle, c.name, c.description, c.num_employees, c.logo_url
		  FROM jobs AS j
		  JOIN companies AS c ON c.handle = j.company_handle
		 WHERE j.id = $1`

	var j models.JobDetail
	err := s.DB.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle,
		&j.Company.Handle, &j.Company.Name, &j.Company.Description, &j.Company.NumEmployees, &j.Company.LogoURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("No job: %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &j, nil
}

// Update applies a partial update. The id and company handle are immutable.
func (s *JobService) Update(ctx context.Context, id int, changes map[string]any) (*models.Job, error) {
	for _, field := range jobImmutable {
		if _, ok := changes[field]; ok {
			return nil, apperr.BadRequest(fmt.Sprintf("Cannot change %s of a job", field))
		}
	}

	setCols, values, err := sqlutil.PartialUpdate(changes, nil)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "jobs.Update")
	defer span.End()
	span.SetAttributes(attribute.Int("job.id", id))

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`, setCols, len(values)+1, jobColumns)
	job, err := scanJob(s.DB.QueryRow(ctx, query, append(values, id)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("No job: %d", id))
	}
	if err != nil {
		if pgCode(err) == checkViolation {
			return nil, apperr.BadRequest("Invalid job data")
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (s *JobService) Remove(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "jobs.Remove")
	defer span.End()
	span.SetAttributes(attribute.Int("job.id", id))

	var removed int
	err := s.DB.QueryRow(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id).Scan(&removed)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(fmt.Sprintf("No job: %d", id))
	}
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	return &j, nil
}
