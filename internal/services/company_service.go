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
)

var companyFields = sqlutil.ColumnMap{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// companyPrimaryKey is the constraint Postgres names for the handle column.
const companyPrimaryKey = "companies_pkey"

const companyColumns = `handle, name, description, num_employees, logo_url`

// CompanyFilter holds the optional company search criteria.
type CompanyFilter struct {
	NameLike     string
	MinEmployees *int
	MaxEmployees *int
}

func (f CompanyFilter) Where() (string, []any, error) {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return "", nil, apperr.BadRequest("minEmployees cannot be greater than maxEmployees")
	}

	var w sqlutil.Where
	if f.NameLike != "" {
		w.Arg("name ILIKE $%d", sqlutil.Contains(f.NameLike))
	}
	if f.MinEmployees != nil {
		w.Arg("num_employees >= $%d", *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		w.Arg("num_employees <= $%d", *f.MaxEmployees)
	}
	return w.SQL(), w.Args(), nil
}

type CompanyService struct {
	DB Querier
}

func NewCompanyService(db Querier) *CompanyService {
	return &CompanyService{DB: db}
}

func (s *CompanyService) Create(ctx context.Context, req *dtos.CompanyCreationRequest) (*models.Company, error) {
	const query = `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + companyColumns

	company, err := scanCompany(s.DB.QueryRow(ctx, query,
		req.Handle, req.Name, req.Description, req.NumEmployees, req.LogoURL))
	if err != nil {
		if pgCode(err) == uniqueViolation {
			if pgConstraint(err) == companyPrimaryKey {
				return nil, apperr.BadRequest("Duplicate company: " + req.Handle)
			}
			return nil, apperr.BadRequest("Duplicate company name: " + req.Name)
		}
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return company, nil
}

// FindAll returns the companies matching filter, ordered by name.
func (s *CompanyService) FindAll(ctx context.Context, filter CompanyFilter) ([]models.Company, error) {
	where, args, err := filter.Where()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `SELECT `+companyColumns+` FROM companies`+where+` ORDER BY name`, args...)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	companies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Company, error) {
		var c models.Company
		err := row.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan companies: %w", err)
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return companies, nil
}

// Get returns a company with its jobs, ordered by id.
func (s *CompanyService) Get(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	company, err := scanCompany(s.DB.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("No company: " + handle)
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}

	rows, err := s.DB.Query(ctx, `
		SELECT id, title, salary, equity::text
		  FROM jobs
		 WHERE company_handle = $1
		 ORDER BY id`, handle)
	if err != nil {
		return nil, fmt.Errorf("query company jobs: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CompanyJob, error) {
		var j models.CompanyJob
		err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity)
		return j, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan company jobs: %w", err)
	}
	if jobs == nil {
		jobs = []models.CompanyJob{}
	}

	return &models.CompanyDetail{Company: *company, Jobs: jobs}, nil
}

// Update applies a partial update. The handle cannot change.
func (s *CompanyService) Update(ctx context.Context, handle string, changes map[string]any) (*models.Company, error) {
	if _, ok := changes["handle"]; ok {
		return nil, apperr.BadRequest("Cannot change handle of a company")
	}
	setCols, values, err := sqlutil.PartialUpdate(changes, companyFields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`, setCols, len(values)+1, companyColumns)
	company, err := scanCompany(s.DB.QueryRow(ctx, query, append(values, handle)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("No company: " + handle)
	}
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return nil, apperr.BadRequest("Duplicate company name")
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) Remove(ctx context.Context, handle string) error {
	var removed string
	err := s.DB.QueryRow(ctx, `DELETE FROM companies WHERE handle = $1 RETURNING handle`, handle).Scan(&removed)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("No company: " + handle)
	}
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL); err != nil {
		return nil, err
	}
	return &c, nil
}
