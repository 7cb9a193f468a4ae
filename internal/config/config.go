package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config holds application configuration shared by the HTTP server, the
// import pipeline and the external service clients. Values come from an
// optional YAML file overlaid with environment variables; env wins.
type Config struct {
	Services ServicesConfig `yaml:"services"`
	Import   ImportConfig   `yaml:"import"`
}

// ServicesConfig points at the external collaborators. Empty endpoints mean
// the corresponding client is replaced by a no-op implementation.
type ServicesConfig struct {
	NotificationURL string `yaml:"notification_url"`
	NotificationKey string `yaml:"notification_key"`
	DMSURL          string `yaml:"dms_url"`
	DMSKey          string `yaml:"dms_key"`
	ERPURL          string `yaml:"erp_url"`
	ERPKey          string `yaml:"erp_key"`
	MailURL         string `yaml:"mail_url"`
	MailKey         string `yaml:"mail_key"`
	MailSender      string `yaml:"mail_sender"`
}

// ImportConfig tunes the bulk import pipeline.
type ImportConfig struct {
	// SpoolDir is where uploaded files are kept while a job runs.
	SpoolDir string `yaml:"spool_dir"`

	// MinimumAge applies to every enrollment category except students.
	MinimumAge int `yaml:"minimum_age"`

	// StudentMinimumAge applies when the enrollment category equals
	// StudentCategory (exact, case-sensitive match).
	StudentMinimumAge int `yaml:"student_minimum_age"`

	// StudentCategory is the canonical category label for students.
	StudentCategory string `yaml:"student_category"`

	// ColumnLabels optionally overrides the spreadsheet header mapping
	// (source label -> canonical key).
	ColumnLabels map[string]string `yaml:"column_labels"`
}

// Load reads the YAML file at path (if it exists) and overlays environment
// variables.
//
// Environment variables:
//   - NOTIFICATION_URL / NOTIFICATION_KEY
//   - DMS_URL / DMS_KEY
//   - ERP_URL / ERP_KEY
//   - MAIL_URL / MAIL_KEY / MAIL_SENDER
//   - IMPORT_SPOOL_DIR
func Load(path string) (Config, error) {
	cfg := Config{
		Import: ImportConfig{
			SpoolDir:          "/tmp/ph-import",
			MinimumAge:        18,
			StudentMinimumAge: 16,
			StudentCategory:   "students",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	overlay(&cfg.Services.NotificationURL, "NOTIFICATION_URL")
	overlay(&cfg.Services.NotificationKey, "NOTIFICATION_KEY")
	overlay(&cfg.Services.DMSURL, "DMS_URL")
	overlay(&cfg.Services.DMSKey, "DMS_KEY")
	overlay(&cfg.Services.ERPURL, "ERP_URL")
	overlay(&cfg.Services.ERPKey, "ERP_KEY")
	overlay(&cfg.Services.MailURL, "MAIL_URL")
	overlay(&cfg.Services.MailKey, "MAIL_KEY")
	overlay(&cfg.Services.MailSender, "MAIL_SENDER")
	overlay(&cfg.Import.SpoolDir, "IMPORT_SPOOL_DIR")

	return cfg, nil
}

func overlay(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// Validate checks values the server cannot run without.
func (c Config) Validate() error {
	if c.Import.MinimumAge <= 0 || c.Import.StudentMinimumAge <= 0 {
		return fmt.Errorf("minimum ages must be positive (got %d / %d)",
			c.Import.MinimumAge, c.Import.StudentMinimumAge)
	}
	if c.Import.SpoolDir == "" {
		return fmt.Errorf("import spool dir is empty")
	}
	return nil
}
