package services

import "github.com/justsurfingit/jobly-api/internal/sqlutil"

// JobFilter holds the optional job search criteria.
type JobFilter struct {
	// Title matches case-insensitively anywhere in the job title.
	Title string
	// MinSalary is an inclusive lower bound.
	MinSalary *int
	// HasEquity keeps only jobs with equity above zero. False means no constraint.
	HasEquity bool
}

// Where returns the WHERE fragment for the filter, with placeholders numbered
// from $1, and its arguments. An empty filter yields "" and no arguments.
func (f JobFilter) Where() (string, []any) {
	var w sqlutil.Where
	if f.Title != "" {
		w.Arg("title ILIKE $%d", sqlutil.Contains(f.Title))
	}
	if f.MinSalary != nil {
		w.Arg("salary >= $%d", *f.MinSalary)
	}
	if f.HasEquity {
		w.Cond("equity > 0")
	}
	return w.SQL(), w.Args()
}
