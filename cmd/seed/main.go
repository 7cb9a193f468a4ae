package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/db"
	"github.com/CamuDigital/PH-Backend/internal/location"
	"github.com/CamuDigital/PH-Backend/internal/policyholder"
	"github.com/CamuDigital/PH-Backend/internal/seeds"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	location.Init()
	policyholder.Init()

	if err := seeds.SeedAll(db.DB); err != nil {
		logrus.WithError(err).Fatal("Seeding failed")
	}
	logrus.Info("Seeding complete")
}
