// scripts/create_admin.go — crée le premier compte admin.
// (Remplace la route ouverte /api/admin-init du prototype : rien d'exposé.)
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ksyv/Carillon/config"
	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/models"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	database.Connect(cfg)

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "carillon"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("Un compte admin existe déjà :", username)
		os.Exit(0)
	}

	u := models.User{
		Username:       username,
		Password:       string(hashed),
		Role:           models.RoleAdmin,
		CategoryAccess: models.CategoryAll,
		Name:           "Administrateur",
		Enabled:        true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("Compte admin créé.")
	fmt.Println("   Username:", username)
	fmt.Println("   Password:", password, "(à changer à la première connexion)")
}
