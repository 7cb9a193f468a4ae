package insuree

import (
	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "insuree"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema insuree")
	}

	if err := db.DB.AutoMigrate(&Insuree{}, &Family{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate insuree tables")
	}
}
