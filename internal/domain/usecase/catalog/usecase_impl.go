package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/internal/domain/gateway/db"
	"redfin-etl/internal/domain/model"
	"redfin-etl/pkg/log"
	"redfin-etl/pkg/msg"
)

type catalogUseCase struct {
	retention time.Duration
	workDir   string
	gateway   db.RunGateway
}

func NewCatalogUseCase(retention time.Duration, workDir string, gateway db.RunGateway) UseCase {
	return &catalogUseCase{
		retention: retention,
		workDir:   workDir,
		gateway:   gateway,
	}
}

// FindAllRuns returns a paginated list of runs, newest first
func (uc *catalogUseCase) FindAllRuns(page int, size int) (*model.Page[entity.PipelineRun], error) {
	runs, totalElements, err := uc.fetchRunsAndCountInParallel(page, size)
	if err != nil {
		return nil, err
	}

	return model.NewPage(runs, page, size, totalElements), nil
}

// fetchRunsAndCountInParallel fetches runs and count in parallel for pagination
func (uc *catalogUseCase) fetchRunsAndCountInParallel(page int, size int) ([]entity.PipelineRun, int64, error) {
	var wg sync.WaitGroup
	var runs []entity.PipelineRun
	var totalElements int64
	var runsErr, countErr error

	// Get the run page in parallel
	wg.Add(1)
	go func() {
		defer wg.Done()
		runs, runsErr = uc.gateway.FindAll(page, size)
	}()

	// Get the total count in parallel
	wg.Add(1)
	go func() {
		defer wg.Done()
		totalElements, countErr = uc.gateway.CountAll()
	}()

	// Wait for both operations to complete
	wg.Wait()

	// Check for errors
	if runsErr != nil {
		return nil, 0, fmt.Errorf("failed to find runs: %w", runsErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", countErr)
	}

	return runs, totalElements, nil
}

// FindRunByID searches for a single run by its id
func (uc *catalogUseCase) FindRunByID(id string) (*entity.PipelineRun, error) {
	if id == "" {
		return nil, errors.New(msg.GetMessage("catalog.run.error.id-required"))
	}

	run, err := uc.gateway.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find run by id: %w", err)
	}
	if run == nil {
		return nil, errors.New(msg.GetMessage("catalog.run.error.not-found"))
	}

	return run, nil
}

// FindLatestRun returns the most recently started run
func (uc *catalogUseCase) FindLatestRun() (*entity.PipelineRun, error) {
	run, err := uc.gateway.FindLatest()
	if err != nil {
		return nil, fmt.Errorf("failed to find latest run: %w", err)
	}
	if run == nil {
		return nil, errors.New(msg.GetMessage("catalog.run.error.no-runs"))
	}

	return run, nil
}

// ClearExpired removes finished runs older than the retention window and
// sweeps leftover snapshot files from the work directory
func (uc *catalogUseCase) ClearExpired() (int64, error) {
	cutoff := time.Now().UTC().Add(-uc.retention)

	deleted, err := uc.gateway.DeleteFinishedBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired runs: %w", err)
	}

	uc.sweepWorkDir(cutoff)

	return deleted, nil
}

// sweepWorkDir removes local snapshot files older than the cutoff. A failed
// run can leave its downloads behind.
func (uc *catalogUseCase) sweepWorkDir(cutoff time.Time) {
	if uc.workDir == "" {
		return
	}

	entries, err := os.ReadDir(uc.workDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("failed to read work dir %s: %v", uc.workDir, err)
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(uc.workDir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Warnf("failed to remove leftover file %s: %v", path, err)
		}
	}
}
