package changerequest

import (
	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "insuree"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema insuree")
	}

	if err := db.DB.AutoMigrate(&CategoryChangeRequest{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate change request tables")
	}
}
