package auth

import (
	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_auth"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema app_auth")
	}

	if err := db.DB.AutoMigrate(&User{}, &Session{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate auth tables")
	}
}
