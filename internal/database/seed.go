package database

import (
	"context"
	"fmt"

	"github.com/justsurfingit/jobly-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

var seedCompanies = []models.Company{
	{Handle: "anderson-arias-morrow", Name: "Anderson, Arias and Morrow", Description: "Somebody program how I. Face give away discussion view act inside.", NumEmployees: intPtr(245), LogoURL: strPtr("/logos/logo3.png")},
	{Handle: "bauer-gallagher", Name: "Bauer-Gallagher", Description: "Difficult ready trip question produce produce someone.", NumEmployees: intPtr(862)},
	{Handle: "watson-davis", Name: "Watson-Davis", Description: "Year join loss.", NumEmployees: intPtr(819), LogoURL: strPtr("/logos/logo3.png")},
}

var seedJobs = []models.Job{
	{Title: "Conservator, furniture", Salary: intPtr(110000), Equity: strPtr("0"), CompanyHandle: "watson-davis"},
	{Title: "Information officer", Salary: intPtr(200000), CompanyHandle: "anderson-arias-morrow"},
	{Title: "Consulting civil engineer", Salary: intPtr(60000), Equity: strPtr("0.012"), CompanyHandle: "bauer-gallagher"},
}

// Seed loads sample companies and jobs plus an admin account. Existing rows
// are left alone, so it can run repeatedly.
func Seed(ctx context.Context, db *gorm.DB, adminPassword string, bcryptCost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		companies := append([]models.Company(nil), seedCompanies...)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&companies).Error; err != nil {
			return fmt.Errorf("seed companies: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Job{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count jobs: %w", err)
		}
		if count == 0 {
			jobs := append([]models.Job(nil), seedJobs...)
			if err := tx.Create(&jobs).Error; err != nil {
				return fmt.Errorf("seed jobs: %w", err)
			}
		}

		admin := models.User{
			Username:  "admin",
			Password:  string(hash),
			FirstName: "Admin",
			LastName:  "User",
			Email:     "admin@jobly.dev",
			IsAdmin:   true,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		return nil
	})
}
