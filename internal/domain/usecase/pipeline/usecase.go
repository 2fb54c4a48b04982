package pipeline

import (
	"context"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/pkg/util/retry"
)

// Config holds the pipeline tunables.
type Config struct {
	WorkDir         string
	RawBucket       string
	RawPrefix       string
	TransformBucket string
	TransformPrefix string

	// IngestQueue receives a notification for each transformed object.
	// Empty disables the notification (stage-level auto-ingest covers it).
	IngestQueue string

	// SkipUnchanged finishes scheduled runs as skipped when the remote
	// snapshot matches the stored watermark.
	SkipUnchanged bool

	Retry retry.Config

	// Optional inclusive period_begin filter bounds (YYYY-MM-DD), either
	// side empty keeps that side open.
	PeriodBeginFrom string
	PeriodBeginTo   string
}

type UseCase interface {
	// Execute runs the extract, transform and load tasks in order, each
	// wrapped in the retry policy, and records the run in the ledger.
	// force runs the pipeline even when the snapshot is unchanged.
	Execute(ctx context.Context, trigger entity.RunTrigger, force bool) (*entity.PipelineRun, error)
}
