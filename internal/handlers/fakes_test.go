package handlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/justsurfingit/jobly-api/internal/apperr"
	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/events"
	"github.com/justsurfingit/jobly-api/internal/models"
	"github.com/justsurfingit/jobly-api/internal/services"
)

type fakeJobs struct {
	jobs      map[int]*models.Job
	companies map[string]models.Company
	nextID    int
	lastQuery services.JobFilter
	fail      error
}

func newFakeJobs() *fakeJobs {
	f := &fakeJobs{
		jobs: map[int]*models.Job{},
		companies: map[string]models.Company{
			"c1": {Handle: "c1", Name: "C1", Description: "Desc1"},
			"c2": {Handle: "c2", Name: "C2", Description: "Desc2"},
		},
		nextID: 1,
	}
	salary1, salary2 := 100, 200
	equity1, equity2, equity3 := "0.1", "0.2", "0"
	f.add(&models.Job{Title: "J1", Salary: &salary1, Equity: &equity1, CompanyHandle: "c1"})
	f.add(&models.Job{Title: "J2", Salary: &salary2, Equity: &equity2, CompanyHandle: "c2"})
	f.add(&models.Job{Title: "J3", Equity: &equity3, CompanyHandle: "c1"})
	return f
}

func (f *fakeJobs) add(j *models.Job) *models.Job {
	j.ID = f.nextID
	f.nextID++
	f.jobs[j.ID] = j
	return j
}

func (f *fakeJobs) Create(_ context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if _, ok := f.companies[req.CompanyHandle]; !ok {
		return nil, apperr.NotFound("No company: " + req.CompanyHandle)
	}
	return f.add(&models.Job{Title: req.Title, Salary: req.Salary, Equity: req.Equity, CompanyHandle: req.CompanyHandle}), nil
}

func (f *fakeJobs) FindAll(_ context.Context, filter services.JobFilter) ([]models.JobListing, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.lastQuery = filter
	out := []models.JobListing{}
	for _, j := range f.jobs {
		if filter.Title != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.MinSalary != nil && (j.Salary == nil || *j.Salary < *filter.MinSalary) {
			continue
		}
		if filter.HasEquity && (j.Equity == nil || *j.Equity == "0") {
			continue
		}
		out = append(out, models.JobListing{Job: *j, CompanyName: f.companies[j.CompanyHandle].Name})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Title < out[b].Title })
	return out, nil
}

func (f *fakeJobs) Get(_ context.Context, id int) (*models.JobDetail, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("No job: %d", id))
	}
	return &models.JobDetail{Job: *j, Company: f.companies[j.CompanyHandle]}, nil
}

func (f *fakeJobs) Update(_ context.Context, id int, changes map[string]any) (*models.Job, error) {
	if len(changes) == 0 {
		return nil, apperr.BadRequest("No data")
	}
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("No job: %d", id))
	}
	if v, ok := changes["title"].(string); ok {
		j.Title = v
	}
	if v, ok := changes["salary"]; ok {
		j.Salary = nil
		if n, ok := v.(int); ok {
			j.Salary = &n
		}
	}
	if v, ok := changes["equity"]; ok {
		j.Equity = nil
		if s, ok := v.(string); ok {
			j.Equity = &s
		}
	}
	return j, nil
}

func (f *fakeJobs) Remove(_ context.Context, id int) error {
	if _, ok := f.jobs[id]; !ok {
		return apperr.NotFound(fmt.Sprintf("No job: %d", id))
	}
	delete(f.jobs, id)
	return nil
}

type fakeCompanies struct {
	companies map[string]*models.Company
	lastQuery services.CompanyFilter
}

func newFakeCompanies() *fakeCompanies {
	n1 := 1
	return &fakeCompanies{companies: map[string]*models.Company{
		"c1": {Handle: "c1", Name: "C1", Description: "Desc1", NumEmployees: &n1},
	}}
}

func (f *fakeCompanies) Create(_ context.Context, req *dtos.CompanyCreationRequest) (*models.Company, error) {
	if _, ok := f.companies[req.Handle]; ok {
		return nil, apperr.BadRequest("Duplicate company: " + req.Handle)
	}
	c := &models.Company{Handle: req.Handle, Name: req.Name, Description: req.Description, NumEmployees: req.NumEmployees, LogoURL: req.LogoURL}
	f.companies[c.Handle] = c
	return c, nil
}

func (f *fakeCompanies) FindAll(_ context.Context, filter services.CompanyFilter) ([]models.Company, error) {
	if _, _, err := filter.Where(); err != nil {
		return nil, err
	}
	f.lastQuery = filter
	out := []models.Company{}
	for _, c := range f.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (f *fakeCompanies) Get(_ context.Context, handle string) (*models.CompanyDetail, error) {
	c, ok := f.companies[handle]
	if !ok {
		return nil, apperr.NotFound("No company: " + handle)
	}
	return &models.CompanyDetail{Company: *c, Jobs: []models.CompanyJob{}}, nil
}

func (f *fakeCompanies) Update(_ context.Context, handle string, changes map[string]any) (*models.Company, error) {
	if len(changes) == 0 {
		return nil, apperr.BadRequest("No data")
	}
	c, ok := f.companies[handle]
	if !ok {
		return nil, apperr.NotFound("No company: " + handle)
	}
	if v, ok := changes["name"].(string); ok {
		c.Name = v
	}
	return c, nil
}

func (f *fakeCompanies) Remove(_ context.Context, handle string) error {
	if _, ok := f.companies[handle]; !ok {
		return apperr.NotFound("No company: " + handle)
	}
	delete(f.companies, handle)
	return nil
}

type fakeUsers struct {
	users     map[string]*models.User
	passwords map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users: map[string]*models.User{
			"u1": {Username: "u1", FirstName: "U1F", LastName: "U1L", Email: "user1@user.com"},
			"a1": {Username: "a1", FirstName: "A1F", LastName: "A1L", Email: "admin@user.com", IsAdmin: true},
		},
		passwords: map[string]string{"u1": "password1", "a1": "password1"},
	}
}

func (f *fakeUsers) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	if u, ok := f.users[username]; ok && f.passwords[username] == password {
		return u, nil
	}
	return nil, apperr.Unauthorized("Invalid username/password")
}

func (f *fakeUsers) Register(_ context.Context, req *dtos.UserRegisterRequest, isAdmin bool) (*models.User, error) {
	if _, ok := f.users[req.Username]; ok {
		return nil, apperr.BadRequest("Duplicate username: " + req.Username)
	}
	u := &models.User{Username: req.Username, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, IsAdmin: isAdmin}
	f.users[u.Username] = u
	f.passwords[u.Username] = req.Password
	return u, nil
}

func (f *fakeUsers) FindAll(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Username < out[b].Username })
	return out, nil
}

func (f *fakeUsers) Get(_ context.Context, username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFound("No user: " + username)
	}
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, username string, changes map[string]any) (*models.User, error) {
	if len(changes) == 0 {
		return nil, apperr.BadRequest("No data")
	}
	u, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFound("No user: " + username)
	}
	if v, ok := changes["firstName"].(string); ok {
		u.FirstName = v
	}
	return u, nil
}

func (f *fakeUsers) Remove(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return apperr.NotFound("No user: " + username)
	}
	delete(f.users, username)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
