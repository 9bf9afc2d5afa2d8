package scheduler

import (
	"log"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
)

// SnapshotJob ejecuta la misma automatización que el endpoint de cron, pero
// disparada desde el scheduler interno
type SnapshotJob struct {
	snapshots *repository.SnapshotRepository
}

func NewSnapshotJob(snapshots *repository.SnapshotRepository) *SnapshotJob {
	return &SnapshotJob{snapshots: snapshots}
}

func (j *SnapshotJob) Name() string {
	return "holdings-snapshots"
}

func (j *SnapshotJob) Run() error {
	summary, err := j.snapshots.RunAutomation(false)
	if err != nil {
		return err
	}

	if summary.Created > 0 {
		log.Printf("Snapshots automáticos: %d usuarios procesados, %d creados",
			summary.Processed, summary.Created)
	}
	return nil
}
