package seed

import (
	"time"

	"equiptrack/config"
	"equiptrack/internal/auth"
	"equiptrack/internal/lifecycle"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"

	"gorm.io/gorm"
)

// Seed loads development fixtures: the engineer roster that used to be a
// compiled-in list, two customer companies with users, and a handful of
// records spread across the status bands.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	engineers := []Engineer{
		{Name: "Dave Thompson", Active: true},
		{Name: "Steve Collins", Active: true},
		{Name: "Mark Whitfield", Active: true},
		{Name: "Paul Hargreaves", Active: true},
		{Name: "Ritchie Dawson", Active: false},
	}

	for _, engineer := range engineers {
		var existing Engineer
		if err := db.First(&existing, "name = ?", engineer.Name).Error; err == nil {
			continue
		}
		if err := db.Create(&engineer).Error; err != nil {
			log.Er("failed to create engineer", err, "name", engineer.Name)
		}
	}

	companies := []Company{
		{Name: "Northfield Fabrications", ContactName: "Jim Naylor", ContactEmail: "jim@northfield-fab.example.com"},
		{Name: "Calder Valley Motors", ContactName: "Sue Ogden", ContactEmail: "sue@caldervalley.example.com"},
	}

	companyIDs := make(map[string]string, len(companies))
	for _, company := range companies {
		var existing Company
		if err := db.First(&existing, "name = ?", company.Name).Error; err == nil {
			companyIDs[company.Name] = existing.ID
			continue
		}
		if err := db.Create(&company).Error; err != nil {
			log.Er("failed to create company", err, "name", company.Name)
			continue
		}
		companyIDs[company.Name] = company.ID
	}

	password, err := auth.HashPassword("password")
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	users := []User{
		{
			Login:     "jim",
			Password:  password,
			FirstName: "Jim",
			LastName:  "Naylor",
			Role:      RoleUser,
			CompanyID: companyIDs["Northfield Fabrications"],
		},
		{
			Login:     "sue",
			Password:  password,
			FirstName: "Sue",
			LastName:  "Ogden",
			Role:      RoleUser,
			CompanyID: companyIDs["Calder Valley Motors"],
		},
	}

	for _, user := range users {
		var existing User
		if err := db.First(&existing, "login = ?", user.Login).Error; err == nil {
			continue
		}
		if err := db.Create(&user).Error; err != nil {
			log.Er("failed to create user", err, "login", user.Login)
		}
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	serviceDates := map[string]time.Time{
		"BWS-10001": now.AddDate(0, 0, -10),  // valid
		"BWS-10002": now.AddDate(0, 0, -350), // due soon
		"BWS-10003": now.AddDate(0, -13, 0),  // expired
	}

	categories := []Category{CategoryService, CategorySpotWelder, CategoryCompressor}
	index := 0
	for certificate, serviceDate := range serviceDates {
		var existing ServiceRecord
		if err := db.First(&existing, "certificate_number = ?", certificate).Error; err == nil {
			index++
			continue
		}

		retest := lifecycle.RetestDate(serviceDate)
		record := ServiceRecord{
			Category:          categories[index%len(categories)],
			CompanyID:         companyIDs["Northfield Fabrications"],
			CertificateNumber: certificate,
			ServiceDate:       serviceDate,
			RetestDate:        &retest,
			EngineerName:      "Dave Thompson",
			Equipment1Name:    "MIG Welder",
			Equipment1Serial:  "MW-4471",
		}
		if err := db.Create(&record).Error; err != nil {
			log.Er("failed to create record", err, "certificate", certificate)
		}
		index++
	}

	return nil
}
