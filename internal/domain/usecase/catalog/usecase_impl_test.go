package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/pkg/msg"
)

type fakeRunGateway struct {
	runs    []entity.PipelineRun
	byID    *entity.PipelineRun
	latest  *entity.PipelineRun
	count   int64
	deleted int64

	findErr error
	cutoff  time.Time
}

func (f *fakeRunGateway) Create(run *entity.PipelineRun) error { return nil }

func (f *fakeRunGateway) Update(run *entity.PipelineRun) error { return nil }

func (f *fakeRunGateway) FindByID(id string) (*entity.PipelineRun, error) {
	return f.byID, f.findErr
}

func (f *fakeRunGateway) FindAll(page int, size int) ([]entity.PipelineRun, error) {
	return f.runs, f.findErr
}

func (f *fakeRunGateway) FindLatest() (*entity.PipelineRun, error) {
	return f.latest, f.findErr
}

func (f *fakeRunGateway) CountAll() (int64, error) { return f.count, nil }

func (f *fakeRunGateway) DeleteFinishedBefore(cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, nil
}

func TestFindAllRunsBuildsPage(t *testing.T) {
	gateway := &fakeRunGateway{
		runs: []entity.PipelineRun{
			*entity.NewPipelineRun(entity.RunTriggerScheduled),
			*entity.NewPipelineRun(entity.RunTriggerManual),
		},
		count: 5,
	}
	uc := NewCatalogUseCase(24*time.Hour, "", gateway)

	page, err := uc.FindAllRuns(0, 2)
	if err != nil {
		t.Fatalf("FindAllRuns returned error: %v", err)
	}

	if len(page.Content) != 2 {
		t.Errorf("page content has %d runs, want 2", len(page.Content))
	}
	if page.Number != 0 || page.Size != 2 {
		t.Errorf("page number/size = %d/%d, want 0/2", page.Number, page.Size)
	}
	if page.TotalElements != 5 || page.TotalPages != 3 {
		t.Errorf("page totals = %d elements, %d pages, want 5 and 3", page.TotalElements, page.TotalPages)
	}
	if page.NumberOfElements != 2 {
		t.Errorf("NumberOfElements = %d, want 2", page.NumberOfElements)
	}
}

func TestFindAllRunsPropagatesGatewayError(t *testing.T) {
	gateway := &fakeRunGateway{findErr: errors.New("connection refused")}
	uc := NewCatalogUseCase(24*time.Hour, "", gateway)

	if _, err := uc.FindAllRuns(0, 10); err == nil {
		t.Fatal("expected error from failing gateway")
	}
}

func TestFindRunByIDRequiresID(t *testing.T) {
	uc := NewCatalogUseCase(24*time.Hour, "", &fakeRunGateway{})

	_, err := uc.FindRunByID("")
	if err == nil {
		t.Fatal("expected error for empty id")
	}
	if err.Error() != msg.GetMessage("catalog.run.error.id-required") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestFindRunByIDNotFound(t *testing.T) {
	uc := NewCatalogUseCase(24*time.Hour, "", &fakeRunGateway{})

	_, err := uc.FindRunByID("missing-id")
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if err.Error() != msg.GetMessage("catalog.run.error.not-found") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestFindRunByIDReturnsRun(t *testing.T) {
	run := entity.NewPipelineRun(entity.RunTriggerManual)
	uc := NewCatalogUseCase(24*time.Hour, "", &fakeRunGateway{byID: run})

	found, err := uc.FindRunByID(run.ID)
	if err != nil {
		t.Fatalf("FindRunByID returned error: %v", err)
	}
	if found.ID != run.ID {
		t.Errorf("found run %s, want %s", found.ID, run.ID)
	}
}

func TestFindLatestRunEmptyCatalog(t *testing.T) {
	uc := NewCatalogUseCase(24*time.Hour, "", &fakeRunGateway{})

	_, err := uc.FindLatestRun()
	if err == nil {
		t.Fatal("expected error when no runs recorded")
	}
	if err.Error() != msg.GetMessage("catalog.run.error.no-runs") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestClearExpiredDeletesRowsAndSweepsWorkDir(t *testing.T) {
	workDir := t.TempDir()

	oldPath := filepath.Join(workDir, "redfin_data_20230101T000000.tsv")
	if err := os.WriteFile(oldPath, []byte("stale"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldPath, stale, stale); err != nil {
		t.Fatalf("backdating fixture: %v", err)
	}

	freshPath := filepath.Join(workDir, "redfin_data_fresh.tsv")
	if err := os.WriteFile(freshPath, []byte("fresh"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	gateway := &fakeRunGateway{deleted: 3}
	uc := NewCatalogUseCase(24*time.Hour, workDir, gateway)

	deleted, err := uc.ClearExpired()
	if err != nil {
		t.Fatalf("ClearExpired returned error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	wantCutoff := time.Now().UTC().Add(-24 * time.Hour)
	if gateway.cutoff.After(wantCutoff.Add(time.Minute)) || gateway.cutoff.Before(wantCutoff.Add(-time.Minute)) {
		t.Errorf("cutoff = %v, want about %v", gateway.cutoff, wantCutoff)
	}

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("stale snapshot file survived the sweep")
	}
	if _, err := os.Stat(freshPath); err != nil {
		t.Error("fresh file was swept away")
	}
}

func TestClearExpiredToleratesMissingWorkDir(t *testing.T) {
	gateway := &fakeRunGateway{deleted: 1}
	uc := NewCatalogUseCase(24*time.Hour, filepath.Join(t.TempDir(), "never-created"), gateway)

	deleted, err := uc.ClearExpired()
	if err != nil {
		t.Fatalf("ClearExpired returned error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}
