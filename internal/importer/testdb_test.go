package importer

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/CamuDigital/PH-Backend/internal/config"
	"github.com/CamuDigital/PH-Backend/internal/external"
	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/location"
	"github.com/CamuDigital/PH-Backend/internal/policyholder"
)

// openTestDB builds a temp-file database attached under every namespace so
// the schema-qualified table names resolve. The same file backs each schema
// because AutoMigrate emits unqualified CREATE INDEX statements that sqlite
// resolves against main; with one shared database, main and the schema
// aliases are the same thing. A single connection is forced because each
// pooled sqlite connection would get its own set of attached databases.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	tdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		// sqlite cannot parse the schema-qualified REFERENCES clauses gorm
		// generates for the many2many join table, and this harness never
		// enforced foreign keys anyway (sqlite defaults them off).
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := tdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, schema := range []string{"app_auth", "location", "insuree", "policyholder", "importer"} {
		if err := tdb.Exec("ATTACH DATABASE '" + dsn + "' AS " + schema).Error; err != nil {
			t.Fatalf("attach schema %s: %v", schema, err)
		}
	}

	err = tdb.AutoMigrate(
		&location.Village{},
		&insuree.Insuree{},
		&insuree.Family{},
		&policyholder.PolicyHolder{},
		&policyholder.ContributionPlan{},
		&policyholder.ContributionPlanBundle{},
		&policyholder.PolicyHolderContributionPlanBundle{},
		&policyholder.PolicyHolderInsuree{},
		&ImportJob{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}

	// The change request table carries a postgres array column, which sqlite's
	// DDL parser rejects, so it is created by hand here.
	err = tdb.Exec(`CREATE TABLE insuree.change_requests (
		id text PRIMARY KEY,
		code text,
		insuree_id text NOT NULL,
		policy_holder_id text NOT NULL,
		old_category text,
		new_category text,
		request_type text NOT NULL,
		status text DEFAULT 'Pending',
		documents text,
		payload jsonb DEFAULT '{}',
		audit_user_id text,
		created_at datetime,
		updated_at datetime
	)`).Error
	if err != nil {
		t.Fatalf("create change_requests: %v", err)
	}

	return tdb
}

// recordingNotifier captures event kinds for assertions.
type recordingNotifier struct {
	events []string
}

func (r *recordingNotifier) Notify(ctx context.Context, eventKind string, payload interface{}) error {
	r.events = append(r.events, eventKind)
	return nil
}

func testImportConfig() config.ImportConfig {
	return config.ImportConfig{
		SpoolDir:          os.TempDir(),
		MinimumAge:        18,
		StudentMinimumAge: 16,
		StudentCategory:   "students",
	}
}

func newTestOrchestrator(t *testing.T, tdb *gorm.DB, notifier external.Notifier) *Orchestrator {
	t.Helper()
	if notifier == nil {
		notifier = external.NopNotifier{}
	}
	return NewOrchestrator(tdb, testImportConfig(), external.DefaultCamuNumberGenerator{},
		notifier, external.NopFolderSink{}, external.NopMailer{})
}

// seedPolicyHolder creates a policyholder with an active bundle and one
// village, the minimum fixture every import needs.
func seedPolicyHolder(t *testing.T, tdb *gorm.DB) (*policyholder.PolicyHolder, *policyholder.ContributionPlanBundle, *location.Village) {
	t.Helper()

	village := &location.Village{
		ID:           uuid.New(),
		Code:         "01020001",
		Name:         "Bacongo",
		Municipality: "Brazzaville",
		District:     "Bacongo",
		Region:       "Brazzaville",
	}
	if err := tdb.Create(village).Error; err != nil {
		t.Fatalf("seed village: %v", err)
	}

	ph := &policyholder.PolicyHolder{
		ID:        uuid.New(),
		Code:      "PH-TEST",
		TradeName: "Société Test",
	}
	if err := tdb.Create(ph).Error; err != nil {
		t.Fatalf("seed policyholder: %v", err)
	}

	bundle := &policyholder.ContributionPlanBundle{
		ID:   uuid.New(),
		Code: "CPB-TEST",
		Name: "Bundle test",
	}
	if err := tdb.Create(bundle).Error; err != nil {
		t.Fatalf("seed bundle: %v", err)
	}

	link := policyholder.PolicyHolderContributionPlanBundle{
		ID:                       uuid.New(),
		PolicyHolderID:           ph.ID,
		ContributionPlanBundleID: bundle.ID,
		DateValidFrom:            time.Now(),
	}
	if err := tdb.Create(&link).Error; err != nil {
		t.Fatalf("seed bundle link: %v", err)
	}

	return ph, bundle, village
}

// writeCSV spools a spreadsheet with French headers into a temp file.
func writeCSV(t *testing.T, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "import.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create csv: %v", err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	w.Flush()
	if err := f.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}
	return path
}

func createJob(t *testing.T, tdb *gorm.DB, phID uuid.UUID, sourcePath string) uuid.UUID {
	t.Helper()

	job := ImportJob{
		ID:             uuid.New(),
		PolicyHolderID: phID,
		FileName:       filepath.Base(sourcePath),
		SourcePath:     sourcePath,
		Status:         JobQueued,
		AuditUserID:    "test",
	}
	if err := tdb.Create(&job).Error; err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job.ID
}
