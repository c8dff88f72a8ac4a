package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/peopleops/hr-management/internal/auth"
	employeeDatamodel "github.com/peopleops/hr-management/internal/core/datamodel/employee"
	userDatamodel "github.com/peopleops/hr-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the well-known login accounts and sample employees.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			if err := db.Exec("DELETE FROM employees").Error; err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		seedUsers(db)
		seedEmployees(db)
	},
}

// seedUsers inserts one account per role, all sharing the development
// password. Existing accounts with the same email are left alone.
func seedUsers(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Test1234?"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	seeds := []userDatamodel.User{
		{Username: "admin", Email: "admin@admin.com", Role: int(auth.RoleAdmin)},
		{Username: "systemAdmin", Email: "systemAdmin@systemAdmin.com", Role: int(auth.RoleSystemAdmin)},
		{Username: "payrollAccountManager", Email: "payrollAccountManager@payrollAccountManager.com", Role: int(auth.RolePayrollAccountManager)},
		{Username: "companyHR", Email: "companyHR@companyHR.com", Role: int(auth.RoleCompanyHR)},
		{Username: "employee", Email: "employee@employee.com", Role: int(auth.RoleEmployee)},
	}

	for _, seed := range seeds {
		var existing userDatamodel.User
		err := db.Where("email = ?", seed.Email).First(&existing).Error
		if err == nil {
			fmt.Printf("User %s already exists, skipping\n", seed.Username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("failed to look up user %s: %v", seed.Username, err)
		}

		seed.PasswordHash = string(hash)
		if err := db.Create(&seed).Error; err != nil {
			log.Fatalf("failed to seed user %s: %v", seed.Username, err)
		}
		fmt.Printf("Seeded user: %s (role %d)\n", seed.Username, seed.Role)
	}
}

// seedEmployees fills an empty employees table with generated records.
func seedEmployees(db *gorm.DB) {
	var count int64
	if err := db.Model(&employeeDatamodel.Employee{}).Count(&count).Error; err != nil {
		log.Fatalf("failed to count employees: %v", err)
	}
	if count > 0 {
		fmt.Println("Employees already present, skipping employee seed")
		return
	}

	for i := 0; i < 10; i++ {
		e := employeeDatamodel.Employee{
			Name:       gofakeit.Name(),
			Email:      gofakeit.Email(),
			JobTitle:   gofakeit.JobTitle(),
			Department: gofakeit.JobDescriptor(),
		}
		if err := db.Create(&e).Error; err != nil {
			log.Fatalf("failed to seed employee: %v", err)
		}
	}
	fmt.Println("Seeded 10 sample employees")
}
