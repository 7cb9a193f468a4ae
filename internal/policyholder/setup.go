package policyholder

import (
	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "policyholder"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema policyholder")
	}

	err := db.DB.AutoMigrate(
		&PolicyHolder{},
		&ContributionPlan{},
		&ContributionPlanBundle{},
		&PolicyHolderContributionPlanBundle{},
		&PolicyHolderInsuree{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate policyholder tables")
	}
}
