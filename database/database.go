package database

import (
	"log"

	"github.com/ksyv/Carillon/config"
	"github.com/ksyv/Carillon/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	// TranslateError : les violations de contrainte unique remontent en
	// gorm.ErrDuplicatedKey quel que soit le driver — le store s'appuie dessus.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate est séparé de Connect pour que les tests puissent migrer
// leur propre base (sqlite en mémoire).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Child{},
		&models.AttendanceRecord{},
		&models.PlannedNote{},
		&models.BillingRule{},
		&models.User{},
	)
}
