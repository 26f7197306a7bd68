package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ksyv/Carillon/config"
	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/routes"
)

func main() {
	// .env facultatif (dev) ; en prod les variables viennent de l'environnement.
	_ = godotenv.Load()

	cfg := config.Load()

	// Si la base n'est pas joignable on s'arrête tout de suite.
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	log.Printf("Carillon API démarrée (%s) sur :%s", cfg.AppEnv, cfg.AppPort)
	if err := e.Start(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}
