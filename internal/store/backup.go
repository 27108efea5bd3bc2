package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	backupPrefix     = "catalog_backup_"
	backupTimeLayout = "20060102_150405"
)

// BackupManager snapshots the catalog document before each run and prunes
// old snapshots by age and count. Backups are best-effort: a failed snapshot
// is logged and never blocks the sync.
type BackupManager struct {
	dir           string
	retentionDays int
	maxCount      int
	logger        *logrus.Entry
}

func NewBackupManager(dir string, retentionDays, maxCount int, logger *logrus.Entry) *BackupManager {
	return &BackupManager{
		dir:           dir,
		retentionDays: retentionDays,
		maxCount:      maxCount,
		logger:        logger,
	}
}

// Snapshot copies the catalog document into an immutable timestamp-named
// file. A missing source means there is nothing to back up yet.
func (m *BackupManager) Snapshot(sourcePath string) (string, error) {
	data, err := os.ReadFile(sourcePath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read catalog document for backup: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := backupPrefix + time.Now().Format(backupTimeLayout) + ".json"
	target := filepath.Join(m.dir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup snapshot: %w", err)
	}
	return target, nil
}

// Prune deletes snapshots older than the retention window and, when more
// than maxCount remain, the oldest surplus ones.
func (m *BackupManager) Prune() int {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if !os.IsNotExist(err) && m.logger != nil {
			m.logger.WithError(err).Warn("failed to list backup directory")
		}
		return 0
	}

	type snapshot struct {
		name  string
		taken time.Time
	}
	var snapshots []snapshot
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), ".json")
		taken, err := time.ParseInLocation(backupTimeLayout, stamp, time.Local)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, snapshot{name: name, taken: taken})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].taken.Before(snapshots[j].taken)
	})

	cutoff := time.Now().AddDate(0, 0, -m.retentionDays)
	removed := 0
	keep := snapshots[:0]
	for _, s := range snapshots {
		if s.taken.Before(cutoff) {
			if err := os.Remove(filepath.Join(m.dir, s.name)); err == nil {
				removed++
				continue
			}
		}
		keep = append(keep, s)
	}

	if m.maxCount > 0 && len(keep) > m.maxCount {
		for _, s := range keep[:len(keep)-m.maxCount] {
			if err := os.Remove(filepath.Join(m.dir, s.name)); err == nil {
				removed++
			}
		}
	}

	if removed > 0 && m.logger != nil {
		m.logger.WithField("removed", removed).Info("pruned old backup snapshots")
	}
	return removed
}
