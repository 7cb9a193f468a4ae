package location

import (
	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "location"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema location")
	}

	if err := db.DB.AutoMigrate(&Village{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate location tables")
	}
}
