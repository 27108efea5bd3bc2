package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler triggers report generation once daily at a fixed local time in
// a fixed timezone and prunes dated artifacts past the retention window.
// Report retention is independent of backup retention.
type Scheduler struct {
	cron          *cron.Cron
	generate      func(now time.Time) error
	reportDir     string
	retentionDays int
	location      *time.Location
	logger        *logrus.Entry
}

func NewScheduler(timezone string, hour, minute int, reportDir string, retentionDays int,
	generate func(now time.Time) error, logger *logrus.Entry) (*Scheduler, error) {

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", timezone, err)
	}

	s := &Scheduler{
		cron:          cron.New(cron.WithLocation(location)),
		generate:      generate,
		reportDir:     reportDir,
		retentionDays: retentionDays,
		location:      location,
		logger:        logger,
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("failed to schedule report job: %w", err)
	}
	return s, nil
}

// Start begins the schedule in a background goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithField("dir", s.reportDir).Info("report scheduler started")
}

// Stop halts the schedule; a running job finishes first
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("report scheduler stopped")
}

func (s *Scheduler) runOnce() {
	now := time.Now().In(s.location)
	if err := s.generate(now); err != nil {
		s.logger.WithError(err).Error("scheduled report generation failed")
	}
	removed := PruneArtifacts(s.reportDir, s.retentionDays, now, s.logger)
	if removed > 0 {
		s.logger.WithField("removed", removed).Info("pruned old report artifacts")
	}
}

// PruneArtifacts deletes dated report files older than the retention window.
// The master artifact is never pruned.
func PruneArtifacts(dir string, retentionDays int, now time.Time, logger *logrus.Entry) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) && logger != nil {
			logger.WithError(err).Warn("failed to list report directory")
		}
		return 0
	}

	cutoff := now.AddDate(0, 0, -retentionDays)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if name == masterArtifactName {
			continue
		}
		if !strings.HasPrefix(name, datedArtifactPrefix) || !strings.HasSuffix(name, ".xlsx") {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, datedArtifactPrefix), ".xlsx")
		day, err := time.ParseInLocation(dateLayout, stamp, now.Location())
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, name)); err == nil {
				removed++
			}
		}
	}
	return removed
}
