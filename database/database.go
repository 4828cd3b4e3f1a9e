package database

import (
	"fmt"

	"sbook/config"
	"sbook/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	DB = db
	log.Info("Connected to database")

	if cfg.DBAutoMigrate {
		log.Info("Starting auto-migration...")

		if err := DB.AutoMigrate(
			&models.Account{},
			&models.Session{},
			&models.LedgerEntry{},
			&models.Bet{},
			&models.BetLeg{},
			&models.MatchResult{},
		); err != nil {
			log.Fatal("Failed to auto-migrate database: ", err)
		}

		log.Info("Auto migration completed")
	}

	seedRootAdmin(cfg)
}

// seedRootAdmin creates the root admin once on an empty tree. It is the only
// account with a nil parent and the terminus of every settlement cascade.
func seedRootAdmin(cfg *config.Config) {
	var count int64
	if err := DB.Model(&models.Account{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		log.Fatal("Failed to check for root admin: ", err)
	}
	if count > 0 || cfg.AdminPassword == "" {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password: ", err)
	}

	root := models.Account{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
	}
	if err := DB.Create(&root).Error; err != nil {
		log.Fatal("Failed to seed root admin: ", err)
	}
	log.WithField("username", root.Username).Info("Root admin created")
}
