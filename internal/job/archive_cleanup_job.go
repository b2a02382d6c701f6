package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/veridoc/veridoc/internal/filestore"
)

// ArchiveCleanupJob prunes archived evidence texts that have exceeded the
// configured retention period.
type ArchiveCleanupJob struct {
	archive   filestore.Store
	retention time.Duration
}

func NewArchiveCleanupJob(archive filestore.Store, retention time.Duration) *ArchiveCleanupJob {
	return &ArchiveCleanupJob{archive: archive, retention: retention}
}

func (j *ArchiveCleanupJob) Name() string {
	return "archive_cleanup"
}

func (j *ArchiveCleanupJob) Run(ctx context.Context) error {
	if j.archive == nil {
		return nil
	}
	retention := j.retention
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	cutoff := time.Now().Add(-retention)
	removed, err := j.archive.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		logutil.GetLogger(ctx).Info("expired archives removed", zap.Int("count", removed))
	}
	return nil
}
