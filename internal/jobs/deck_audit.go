// File: internal/jobs/deck_audit.go
package jobs

import (
	"context"
	"time"

	"toski_backend/internal/config"
	"toski_backend/internal/moxfield"
	"toski_backend/internal/profile"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ProfileLister is the read side of the profile store the audit needs.
type ProfileLister interface {
	FindAll(ctx context.Context) ([]profile.Profile, error)
}

// DeckConfirmer reports whether a stored deck reference still resolves.
type DeckConfirmer interface {
	Confirm(ctx context.Context, source, deckID string) error
}

// AuditReport summarizes one audit run.
type AuditReport struct {
	Profiles int
	Checked  int
	Dead     int
	Skipped  int
}

// DeckAuditJob periodically re-resolves every stored deck reference and logs the
// ones that no longer exist upstream. It never modifies profiles.
type DeckAuditJob struct {
	profiles      ProfileLister
	decks         DeckConfirmer
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewDeckAuditJob creates a new DeckAuditJob.
func NewDeckAuditJob(
	profiles ProfileLister,
	decks DeckConfirmer,
	logger *zap.Logger,
	cfg *config.Config,
) *DeckAuditJob {
	cronLog := NewCronLogger(logger.Named("cron"))
	scheduler := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.SkipIfStillRunning(cronLog)),
	)

	return &DeckAuditJob{
		profiles:      profiles,
		decks:         decks,
		logger:        logger.Named("DeckAuditJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *DeckAuditJob) SetupAndStart() error {
	jobSpec := j.cfg.DeckAuditJobSchedule // e.g. "@daily", "0 4 * * *"
	if jobSpec == "" {
		j.logger.Info("Deck audit job schedule not defined (DECK_AUDIT_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule deck audit job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Deck audit job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *DeckAuditJob) runJob() {
	j.logger.Info("Starting deck audit run...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	report, err := j.Run(ctx)
	if err != nil {
		j.logger.Error("Deck audit run failed", zap.Error(err))
		return
	}
	j.logger.Info("Deck audit run completed",
		zap.Int("profiles", report.Profiles),
		zap.Int("decks_checked", report.Checked),
		zap.Int("decks_dead", report.Dead),
		zap.Int("decks_skipped", report.Skipped))
}

// Run performs one audit pass.
func (j *DeckAuditJob) Run(ctx context.Context) (AuditReport, error) {
	var report AuditReport
	all, err := j.profiles.FindAll(ctx)
	if err != nil {
		return report, err
	}
	report.Profiles = len(all)

	// A cached positive lookup would hide decks deleted upstream.
	ctx = moxfield.WithoutCache(ctx)
	for _, p := range all {
		for _, d := range p.Decks {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			err := j.decks.Confirm(ctx, d.Source, d.DeckID)
			switch {
			case err == nil:
				report.Checked++
			case moxfield.IsTransient(err):
				report.Skipped++
				j.logger.Warn("Deck could not be checked", zap.String("deckID", d.DeckID), zap.Error(err))
			default:
				report.Checked++
				report.Dead++
				j.logger.Warn("Stored deck no longer resolves",
					zap.String("userID", p.UserID),
					zap.String("deckRefID", d.ID.String()),
					zap.String("deckID", d.DeckID),
					zap.String("source", d.Source))
			}
		}
	}
	return report, nil
}

// Stop gracefully stops the cron scheduler.
func (j *DeckAuditJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping deck audit job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Deck audit job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Deck audit job scheduler stop timed out.")
		}
	}
}
