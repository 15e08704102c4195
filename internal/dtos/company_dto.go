package dtos

type CompanyCreationRequest struct {
	Handle       string  `json:"handle" binding:"required,min=1,max=25"`
	Name         string  `json:"name" binding:"required,min=1"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

// CompanyUpdateRequest accepts an explicit null for numEmployees and logoUrl.
type CompanyUpdateRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1"`
	Description  *string          `json:"description"`
	NumEmployees Nullable[int]    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      Nullable[string] `json:"logoUrl" binding:"omitempty,url"`
}

func (r *CompanyUpdateRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if v, ok := r.NumEmployees.change(); ok {
		changes["numEmployees"] = v
	}
	if v, ok := r.LogoURL.change(); ok {
		changes["logoUrl"] = v
	}
	return changes
}

type CompanyQuery struct {
	NameLike     string `form:"nameLike"`
	MinEmployees *int   `form:"minEmployees" binding:"omitempty,min=0"`
	MaxEmployees *int   `form:"maxEmployees" binding:"omitempty,min=0"`
}

var CompanyQueryKeys = []string{"nameLike", "minEmployees", "maxEmployees"}
