package catalog

import (
	"redfin-etl/internal/domain/entity"
	"redfin-etl/internal/domain/model"
)

type UseCase interface {
	// FindAllRuns returns a paginated list of runs, newest first
	FindAllRuns(page int, size int) (*model.Page[entity.PipelineRun], error)

	// FindRunByID searches for a single run by its id
	FindRunByID(id string) (*entity.PipelineRun, error)

	// FindLatestRun returns the most recently started run
	FindLatestRun() (*entity.PipelineRun, error)

	// ClearExpired removes finished runs older than the retention window
	// and sweeps leftover snapshot files from the work directory
	ClearExpired() (int64, error)
}
