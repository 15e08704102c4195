package dtos

type JobCreationRequest struct {
	Title         string  `json:"title" binding:"required,min=1"`
	Salary        *int    `json:"salary" binding:"omitempty,min=0"`
	Equity        *string `json:"equity" binding:"omitempty,equity"`
	CompanyHandle string  `json:"companyHandle" binding:"required,min=1,max=25"`
}

// JobUpdateRequest lists the only fields a job update may carry; id and
// companyHandle are rejected as unknown fields. An explicit null clears
// salary or equity.
type JobUpdateRequest struct {
	Title  *string          `json:"title" binding:"omitempty,min=1"`
	Salary Nullable[int]    `json:"salary" binding:"omitempty,min=0"`
	Equity Nullable[string] `json:"equity" binding:"omitempty,equity"`
}

func (r *JobUpdateRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if v, ok := r.Salary.change(); ok {
		changes["salary"] = v
	}
	if v, ok := r.Equity.change(); ok {
		changes["equity"] = v
	}
	return changes
}

// JobQuery is the GET /jobs search. HasEquity is true only for the literal "true".
type JobQuery struct {
	Title     string `form:"title"`
	MinSalary *int   `form:"minSalary" binding:"omitempty,min=0"`
	HasEquity string `form:"hasEquity"`
}

var JobQueryKeys = []string{"title", "minSalary", "hasEquity"}

func (q *JobQuery) WantsEquity() bool {
	return q.HasEquity == "true"
}
