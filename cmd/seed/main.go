package main

import (
	"log"
	"os"

	"shift-tracking-be/internal/model"
	"shift-tracking-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a development database: one admin, one manager with a PIN, one
// site with three workers on the roster.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding development data...")

	adminPin := hashPin("1234")
	admin := model.Employee{
		FullName: "Root Admin",
		Role:     "ADMIN",
		PinHash:  &adminPin,
		IsActive: true,
	}
	upsertEmployee(db, &admin)

	managerPin := hashPin("4321")
	manager := model.Employee{
		FullName: "Site Manager",
		Role:     "MANAGER",
		PinHash:  &managerPin,
		IsActive: true,
	}
	upsertEmployee(db, &manager)

	site := model.Site{
		Name:         "North Depot",
		ManagerId:    &manager.Id,
		PlannedStart: "09:00",
		PlannedEnd:   "17:30",
		LunchMinutes: 60,
		IsActive:     true,
	}
	if err := db.Where("name = ?", site.Name).FirstOrCreate(&site).Error; err != nil {
		log.Fatal("Error: failed to seed site:", err)
	}

	workerNames := []string{"Alice Carter", "Bob Miller", "Carol Jones"}
	for i, name := range workerNames {
		code := refCodes[i]
		worker := model.Employee{
			FullName: name,
			Role:     "EMPLOYEE",
			RefCode:  &code,
			IsActive: true,
		}
		upsertEmployee(db, &worker)

		assignment := model.Assignment{
			SiteId:     site.Id,
			EmployeeId: worker.Id,
			IsActive:   true,
		}
		if err := db.Where("site_id = ? AND employee_id = ?", site.Id, worker.Id).
			FirstOrCreate(&assignment).Error; err != nil {
			log.Fatal("Error: failed to seed assignment:", err)
		}
		color.Green("  worker %s, registration code %s", name, code)
	}

	color.Green("✅ Seed completed")
	color.Yellow("Admin PIN: 1234, Manager PIN: 4321")
}

var refCodes = []string{"DEMO2A", "DEMO2B", "DEMO2C"}

func hashPin(pin string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: failed to hash pin:", err)
	}
	return string(hash)
}

func upsertEmployee(db *gorm.DB, employee *model.Employee) {
	if err := db.Where("full_name = ?", employee.FullName).
		FirstOrCreate(employee).Error; err != nil {
		log.Fatal("Error: failed to seed employee:", err)
	}
}
