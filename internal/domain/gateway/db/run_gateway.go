package db

import (
	"time"

	"redfin-etl/internal/domain/entity"
)

type RunGateway interface {
	Create(run *entity.PipelineRun) error
	Update(run *entity.PipelineRun) error

	FindByID(id string) (*entity.PipelineRun, error)
	FindAll(page int, size int) ([]entity.PipelineRun, error)
	FindLatest() (*entity.PipelineRun, error)
	CountAll() (int64, error)

	// DeleteFinishedBefore removes runs that finished before the cutoff.
	// Returns the number of deleted rows.
	DeleteFinishedBefore(cutoff time.Time) (int64, error)
}
