package seeds

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CamuDigital/PH-Backend/internal/location"
	"github.com/CamuDigital/PH-Backend/internal/policyholder"
)

// SeedAll loads the reference data a fresh environment needs: the village
// hierarchy and the standard contribution plans/bundles.
func SeedAll(tx *gorm.DB) error {
	if err := SeedVillages(tx); err != nil {
		return err
	}
	return SeedPlans(tx)
}

func SeedVillages(tx *gorm.DB) error {
	villages := []location.Village{
		{Code: "01010001", Name: "Poto-Poto", Municipality: "Brazzaville", District: "Poto-Poto", Region: "Brazzaville"},
		{Code: "01020001", Name: "Bacongo", Municipality: "Brazzaville", District: "Bacongo", Region: "Brazzaville"},
		{Code: "01030001", Name: "Moungali", Municipality: "Brazzaville", District: "Moungali", Region: "Brazzaville"},
		{Code: "02010001", Name: "Lumumba", Municipality: "Pointe-Noire", District: "Lumumba", Region: "Pointe-Noire"},
		{Code: "02020001", Name: "Mvou-Mvou", Municipality: "Pointe-Noire", District: "Mvou-Mvou", Region: "Pointe-Noire"},
	}

	for _, v := range villages {
		var existing location.Village
		if err := tx.First(&existing, "code = ?", v.Code).Error; err == nil {
			continue
		}
		v.ID = uuid.New()
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
	}
	return nil
}

func SeedPlans(tx *gorm.DB) error {
	plans := []policyholder.ContributionPlan{
		{Code: "CP-EMP", Name: "Salariés", Rate: decimal.NewFromFloat(0.04)},
		{Code: "CP-IND", Name: "Indépendants", Rate: decimal.NewFromFloat(0.05)},
		{Code: "CP-STU", Name: "Étudiants", Rate: decimal.NewFromFloat(0.02)},
	}

	var created []policyholder.ContributionPlan
	for _, p := range plans {
		var existing policyholder.ContributionPlan
		if err := tx.First(&existing, "code = ?", p.Code).Error; err == nil {
			created = append(created, existing)
			continue
		}
		p.ID = uuid.New()
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		created = append(created, p)
	}

	var bundle policyholder.ContributionPlanBundle
	if err := tx.First(&bundle, "code = ?", "CPB-STD").Error; err == nil {
		return nil
	}

	bundle = policyholder.ContributionPlanBundle{
		ID:    uuid.New(),
		Code:  "CPB-STD",
		Name:  "Bundle standard",
		Plans: created,
	}
	return tx.Create(&bundle).Error
}
