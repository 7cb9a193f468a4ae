package importer

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/config"
	"github.com/CamuDigital/PH-Backend/internal/db"
	"github.com/CamuDigital/PH-Backend/internal/external"
)

// Orch is the shared orchestrator, wired in Init.
var Orch *Orchestrator

var spoolDir string

func Init(cfg config.Config) {
	if err := db.EnsureSchema(db.DB, "importer"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema importer")
	}
	if err := db.DB.AutoMigrate(&ImportJob{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate importer tables")
	}

	spoolDir = cfg.Import.SpoolDir
	if err := os.MkdirAll(spoolDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("Failed to create import spool dir")
	}

	var notifier external.Notifier = external.NopNotifier{}
	if cfg.Services.NotificationURL != "" {
		notifier = external.NewHTTPNotifier(cfg.Services.NotificationURL, cfg.Services.NotificationKey)
	}

	var folders external.FolderSink = external.NopFolderSink{}
	if cfg.Services.DMSURL != "" {
		folders = external.NewHTTPFolderSink(cfg.Services.DMSURL, cfg.Services.DMSKey)
	}

	var mailer external.Mailer = external.NopMailer{}
	if cfg.Services.MailURL != "" {
		mailer = external.NewHTTPMailer(cfg.Services.MailURL, cfg.Services.MailKey, cfg.Services.MailSender)
	}

	Orch = NewOrchestrator(db.DB, cfg.Import, external.DefaultCamuNumberGenerator{}, notifier, folders, mailer)
}
