package models

// Company is referenced by jobs through its handle.
type Company struct {
	Handle       string  `gorm:"primaryKey;size:25" json:"handle"`
	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	Description  string  `gorm:"not null;default:''" json:"description"`
	NumEmployees *int    `gorm:"check:num_employees >= 0" json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

type Job struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"not null" json:"title"`
	Salary *int   `gorm:"check:salary >= 0" json:"salary"`
	// Equity is a decimal string in [0, 1], e.g. "0.75".
	Equity        *string `gorm:"type:numeric;check:equity <= 1.0" json:"equity"`
	CompanyHandle string  `gorm:"size:25;not null;index" json:"companyHandle"`

	Company *Company `gorm:"foreignKey:CompanyHandle;references:Handle;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type User struct {
	Username  string `gorm:"primaryKey;size:25" json:"username"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `gorm:"not null" json:"email"`
	IsAdmin   bool   `gorm:"not null;default:false" json:"isAdmin"`
}

// JobListing is a job as returned by searches: only the company's name is embedded.
type JobListing struct {
	Job
	CompanyName string `json:"companyName"`
}

// JobDetail is a single job with its full company.
type JobDetail struct {
	Job
	Company Company `json:"company"`
}

// CompanyJob is a job as listed under its company.
type CompanyJob struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Salary *int    `json:"salary"`
	Equity *string `json:"equity"`
}

type CompanyDetail struct {
	Company
	Jobs []CompanyJob `json:"jobs"`
}
