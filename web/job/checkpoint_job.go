// Package job contains the scheduled maintenance jobs of the panel.
package job

import (
	"quizbank/database"
	"quizbank/logger"

	"go.uber.org/atomic"
)

// CheckpointJob flushes the sqlite WAL back into the main database file so
// a crash loses at most the uncheckpointed tail.
type CheckpointJob struct {
	running atomic.Bool // guards against overlapping runs
}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)

	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
