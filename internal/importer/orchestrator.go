package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/CamuDigital/PH-Backend/internal/config"
	"github.com/CamuDigital/PH-Backend/internal/external"
	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/location"
	"github.com/CamuDigital/PH-Backend/internal/policyholder"
)

// Orchestrator drives one import job start to finish. Rows are strictly
// sequential: later rows may depend on families and persons created by
// earlier ones.
type Orchestrator struct {
	db       *gorm.DB
	cfg      config.ImportConfig
	mapper   *ColumnMapper
	idGen    external.CamuNumberGenerator
	notifier external.Notifier
	folders  external.FolderSink
	mailer   external.Mailer
	log      *logrus.Entry
}

func NewOrchestrator(db *gorm.DB, cfg config.ImportConfig, idGen external.CamuNumberGenerator, notifier external.Notifier, folders external.FolderSink, mailer external.Mailer) *Orchestrator {
	return &Orchestrator{
		db:       db,
		cfg:      cfg,
		mapper:   NewColumnMapper(cfg.ColumnLabels),
		idGen:    idGen,
		notifier: notifier,
		folders:  folders,
		mailer:   mailer,
		log:      logrus.WithField("component", "importer"),
	}
}

// Summary is what synchronous callers get back.
type Summary struct {
	TotalRows    int         `json:"total_rows"`
	SuccessCount int         `json:"success_count"`
	ErrorCount   int         `json:"error_count"`
	Results      []RowResult `json:"results"`
}

// Run processes the job and records its terminal state. Any error outside
// the per-row boundary fails the whole job; per-row results are then not
// persisted.
func (o *Orchestrator) Run(jobID uuid.UUID) {
	log := o.log.WithField("job_id", jobID)

	summary, err := o.runJob(jobID)
	if err != nil {
		log.WithError(err).Error("import job failed")
		if mErr := markFailed(o.db, jobID, err.Error()); mErr != nil {
			log.WithError(mErr).Error("could not mark job failed")
		}
		return
	}

	log.WithFields(logrus.Fields{
		"total":   summary.TotalRows,
		"success": summary.SuccessCount,
		"errors":  summary.ErrorCount,
	}).Info("import job completed")
}

func (o *Orchestrator) runJob(jobID uuid.UUID) (*Summary, error) {
	var job ImportJob
	if err := o.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}
	defer o.removeSpooled(job.SourcePath)

	var ph policyholder.PolicyHolder
	err := o.db.Where("id = ? AND is_deleted = ?", job.PolicyHolderID, false).First(&ph).Error
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New("Policyholder not found")
		}
		return nil, err
	}

	bundle, err := policyholder.ActiveBundle(o.db, ph.ID)
	if err != nil {
		return nil, err
	}

	rows, err := ReadRows(job.SourcePath, o.mapper)
	if err != nil {
		return nil, err
	}

	if err := markProcessing(o.db, job.ID, len(rows)); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}

	summary := &Summary{TotalRows: len(rows)}
	for i, raw := range rows {
		result := o.processRow(i+1, raw, &ph, bundle, job.AuditUserID)
		summary.Results = append(summary.Results, result)
		if counted(statusOf(result)) {
			summary.SuccessCount++
		} else {
			summary.ErrorCount++
		}

		if err := updateProgress(o.db, job.ID, i+1, summary.SuccessCount, summary.ErrorCount); err != nil {
			o.log.WithError(err).WithField("job_id", job.ID).Warn("progress update failed")
		}
	}

	if err := markCompleted(o.db, job.ID, summary.Results); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}
	return summary, nil
}

// processRow runs the per-row pipeline and always yields exactly one result;
// no failure inside it can abort the batch.
func (o *Orchestrator) processRow(ligne int, raw map[string]string, ph *policyholder.PolicyHolder, bundle *policyholder.ContributionPlanBundle, actor string) RowResult {
	row := ParseRow(NormalizeRow(raw))
	log := o.log.WithFields(logrus.Fields{"ligne": ligne, "policyholder": ph.Code})

	status, err := o.processParsedRow(row, ph, bundle, actor, log)
	if err != nil {
		log.WithError(err).Error("row processing failed")
		status = "Erreur: " + err.Error()
	}
	return NewRowResult(ligne, row, status)
}

func (o *Orchestrator) processParsedRow(row ImportRow, ph *policyholder.PolicyHolder, bundle *policyholder.ContributionPlanBundle, actor string, log *logrus.Entry) (string, error) {
	if row.Delete {
		return o.deleteMembership(row, ph, actor)
	}

	if row.DobRaw != "" && row.Dob.IsZero() {
		return StatusInvalidDob, nil
	}

	category, err := external.MapEnrollmentType(row.EnrollmentType)
	if err != nil {
		return "Erreur: Type d'enrôlement inconnu", nil
	}

	village, err := location.FindVillage(o.db, row.Village)
	if err != nil && !errors.Is(err, location.ErrVillageNotFound) {
		return "", err
	}

	person, created, reject, err := o.resolveInsuree(row, village, category, actor)
	if err != nil {
		return "", err
	}
	if reject != "" {
		return reject, nil
	}

	if _, _, err := o.resolveFamily(person, village, category, row.Address, actor); err != nil {
		if errors.Is(err, ErrUnknownVillage) {
			return StatusUnknownVillage, nil
		}
		return "", err
	}

	// Category-change detection must not sink the row.
	if _, err := o.detectCategoryChange(row, ph, category, actor); err != nil {
		log.WithError(err).Warn("category change detection failed")
	}

	status, err := o.upsertMembership(person, ph, bundle, row, actor)
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	if err := o.notifier.Notify(ctx, "membership.upserted", map[string]string{
		"policyholder": ph.Code,
		"camu":         derefCamu(person),
	}); err != nil {
		log.WithError(err).Warn("membership notification failed")
	}

	if created && person.Email != "" {
		if err := o.mailer.Send(ctx, person.Email, "enrollment_welcome", map[string]string{
			"first_name": person.FirstName,
			"category":   category,
		}); err != nil {
			log.WithError(err).Warn("enrollment mail failed")
		}
	}

	return status, nil
}

// RunSync processes an already-created job inline and returns the summary.
// Used by the synchronous import path and the CLI.
func (o *Orchestrator) RunSync(jobID uuid.UUID) (*Summary, error) {
	summary, err := o.runJob(jobID)
	if err != nil {
		if mErr := markFailed(o.db, jobID, err.Error()); mErr != nil {
			o.log.WithError(mErr).Error("could not mark job failed")
		}
		return nil, err
	}
	return summary, nil
}

// removeSpooled deletes an uploaded file once its job is terminal. Files
// outside the spool dir (CLI imports of local files) are left alone.
func (o *Orchestrator) removeSpooled(path string) {
	if path == "" || filepath.Dir(path) != filepath.Clean(o.cfg.SpoolDir) {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		o.log.WithError(err).WithField("path", path).Warn("spooled file cleanup failed")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func statusOf(res RowResult) string {
	if res.Etat == "OK" {
		return StatusSuccess
	}
	return res.Remarque
}

func derefCamu(person *insuree.Insuree) string {
	if person.CamuNumber != nil {
		return *person.CamuNumber
	}
	return ""
}
