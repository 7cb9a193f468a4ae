package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/changerequest"
	"github.com/CamuDigital/PH-Backend/internal/config"
	"github.com/CamuDigital/PH-Backend/internal/db"
	"github.com/CamuDigital/PH-Backend/internal/importer"
	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/location"
	"github.com/CamuDigital/PH-Backend/internal/policyholder"
)

// Runs one bulk import from a local file against the configured database.
// Useful for back-office batches that never touch the HTTP surface.
func main() {
	var (
		filePath = flag.String("file", "", "path to the enrollment spreadsheet (.xlsx or .csv)")
		phCode   = flag.String("policyholder", "", "policyholder code")
	)
	flag.Parse()

	if *filePath == "" || *phCode == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	db.Connect()
	location.Init()
	insuree.Init()
	policyholder.Init()
	changerequest.Init()
	importer.Init(cfg)

	ph, err := policyholder.FindByCode(db.DB, *phCode)
	if err != nil {
		logrus.WithError(err).Fatalf("Policyholder %q not found", *phCode)
	}

	job := importer.ImportJob{
		ID:             uuid.New(),
		PolicyHolderID: ph.ID,
		FileName:       *filePath,
		SourcePath:     *filePath,
		Status:         importer.JobQueued,
		AuditUserID:    "cli",
	}
	if err := db.DB.Create(&job).Error; err != nil {
		logrus.WithError(err).Fatal("Failed to create import job")
	}

	summary, err := importer.Orch.RunSync(job.ID)
	if err != nil {
		logrus.WithError(err).Fatal("Import failed")
	}

	fmt.Printf("total=%d success=%d errors=%d\n",
		summary.TotalRows, summary.SuccessCount, summary.ErrorCount)
	for _, res := range summary.Results {
		fmt.Printf("  ligne %d [%s] %s %s: %s\n",
			res.Ligne, res.Etat, res.Nom, res.Prenom, res.Remarque)
	}
}
