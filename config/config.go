package config

import (
	"log"
	"os"

	"homechef-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "homechef_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads .env if present. A missing file is fine; the real
// environment wins either way.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "homechef_super_secret_2024"))
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_SOURCE", "homechef.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := SeedAdmin(DB); err != nil {
		log.Fatal("Failed to seed admin:", err)
	}

	log.Println("database connected and migrated")
}

// Migrate creates/updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Driver{},
		&models.KitchenOwner{},
		&models.Admin{},
		&models.CustomerAddress{},
		&models.HomeKitchen{},
		&models.MenuItem{},
		&models.MealPlan{},
		&models.MealPlanItem{},
		&models.Order{},
		&models.OrderContains{},
	)
}

// SeedAdmin creates the bootstrap admin account from
// ADMIN_EMAIL/ADMIN_PASSWORD. Admin is the only role that cannot be
// self-registered; an ADMINS membership row marks the account.
func SeedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&models.User{}).Where("Email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			FirstName:      "Admin",
			LastName:       "Seed",
			Email:          email,
			HashedPassword: string(hash),
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		return tx.Create(&models.Admin{AdminUID: admin.UID}).Error
	})
}
