package database

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/skyseen/ITAM/internal/models"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultAdmin()
	seedDepartments()
	seedDocumentTemplates()
}

// Migrate creates or updates the schema. Exposed so tests can run it
// against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Asset{},
		&models.AssetIssuance{},
		&models.AssetDocument{},
		&models.DocumentTemplate{},
		&models.AuditLog{},
		&models.Notification{},
	)
}

// admin credentials come from the environment only
func createDefaultAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     username,
		Email:        username + "@itam.local",
		FullName:     "System Administrator",
		Department:   models.DefaultDepartment,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s", username)
}

func seedDepartments() {
	names := []string{models.DefaultDepartment, "Engineering", "Finance", "HR", "Operations", "Sales"}

	for _, name := range names {
		var count int64
		if err := DB.Model(&models.Department{}).
			Where("name = ?", name).
			Count(&count).Error; err != nil {
			log.Printf("failed to check department %s: %v", name, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&models.Department{Name: name}).Error; err != nil {
			log.Printf("failed to create department %s: %v", name, err)
		}
	}
}
