package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/internal/domain/gateway/api"
	"redfin-etl/internal/domain/gateway/cache"
	"redfin-etl/internal/domain/gateway/db"
	"redfin-etl/internal/domain/gateway/events"
	"redfin-etl/internal/domain/gateway/queue"
	"redfin-etl/internal/domain/gateway/storage"
	"redfin-etl/internal/domain/model"
	"redfin-etl/pkg/log"
	"redfin-etl/pkg/msg"

	"go.uber.org/zap"
)

type pipelineUseCase struct {
	config      Config
	transformer *Transformer
	dataset     api.DatasetGateway
	store       storage.ObjectStore
	runs        db.RunGateway
	watermark   cache.WatermarkGateway
	queueSender queue.Sender
	events      events.Publisher
}

// runArtifacts carries the local paths and snapshot identity between tasks
type runArtifacts struct {
	rawPath string
	csvPath string
	csvSize int64
	meta    *model.SnapshotMeta
}

func NewPipelineUseCase(config Config, dataset api.DatasetGateway, store storage.ObjectStore, runs db.RunGateway, watermark cache.WatermarkGateway, queueSender queue.Sender, eventsPublisher events.Publisher) (UseCase, error) {
	transformer, err := newTransformerFromConfig(config)
	if err != nil {
		return nil, err
	}

	return &pipelineUseCase{
		config:      config,
		transformer: transformer,
		dataset:     dataset,
		store:       store,
		runs:        runs,
		watermark:   watermark,
		queueSender: queueSender,
		events:      eventsPublisher,
	}, nil
}

func newTransformerFromConfig(config Config) (*Transformer, error) {
	var from, to *time.Time

	if config.PeriodBeginFrom != "" {
		parsed, err := time.Parse(entity.DateLayout, config.PeriodBeginFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid period-begin-from %q: %w", config.PeriodBeginFrom, err)
		}
		from = &parsed
	}
	if config.PeriodBeginTo != "" {
		parsed, err := time.Parse(entity.DateLayout, config.PeriodBeginTo)
		if err != nil {
			return nil, fmt.Errorf("invalid period-begin-to %q: %w", config.PeriodBeginTo, err)
		}
		to = &parsed
	}

	return NewTransformer(from, to), nil
}

// Execute runs the three tasks in order and records the run in the ledger
func (uc *pipelineUseCase) Execute(ctx context.Context, trigger entity.RunTrigger, force bool) (*entity.PipelineRun, error) {
	run := entity.NewPipelineRun(trigger)
	if err := uc.runs.Create(run); err != nil {
		return nil, fmt.Errorf("failed to create run row: %w", err)
	}

	log.Info(msg.GetMessage("pipeline.run.start", run.ID, string(trigger)),
		zap.String("run_id", run.ID),
		zap.String("trigger", string(trigger)))

	skipped, runErr := uc.runTasks(ctx, run, force)

	status := entity.RunStatusSucceeded
	message := ""
	switch {
	case runErr != nil:
		status = entity.RunStatusFailed
		message = runErr.Error()
	case skipped:
		status = entity.RunStatusSkipped
		message = "snapshot unchanged"
	}

	if err := run.MarkFinished(status, message); err != nil {
		log.Warnf("could not finish run %s: %v", run.ID, err)
	}
	if err := uc.runs.Update(run); err != nil {
		log.Error("failed to update run row", zap.String("run_id", run.ID), zap.Error(err))
		if runErr == nil {
			runErr = fmt.Errorf("failed to update run row: %w", err)
		}
	}

	uc.publishRunEvent(ctx, run)

	switch status {
	case entity.RunStatusSucceeded:
		log.Info(msg.GetMessage("pipeline.run.success", run.ID, run.RowsRead, run.RowsKept, run.RowsDropped),
			zap.String("run_id", run.ID))
	case entity.RunStatusSkipped:
		log.Info(msg.GetMessage("pipeline.run.skipped", run.ID), zap.String("run_id", run.ID))
	default:
		log.Error(msg.GetMessage("pipeline.run.failure", run.ID, message), zap.String("run_id", run.ID))
	}

	return run, runErr
}

// runTasks executes the task chain. The boolean reports a skipped run.
func (uc *pipelineUseCase) runTasks(ctx context.Context, run *entity.PipelineRun, force bool) (bool, error) {
	// Scheduled runs skip an unchanged snapshot, manual runs can force through
	if uc.config.SkipUnchanged && run.Trigger == entity.RunTriggerScheduled && !force {
		unchanged, fingerprint := uc.snapshotUnchanged(ctx)
		if unchanged {
			run.SnapshotETag = fingerprint
			return true, nil
		}
	}

	artifacts := &runArtifacts{}

	if err := uc.config.Retry.Do(ctx, "extract", func(ctx context.Context) error {
		return uc.extract(ctx, run, artifacts)
	}); err != nil {
		return false, err
	}

	if err := uc.config.Retry.Do(ctx, "transform", func(ctx context.Context) error {
		return uc.transform(ctx, run, artifacts)
	}); err != nil {
		return false, err
	}

	if err := uc.config.Retry.Do(ctx, "load", func(ctx context.Context) error {
		return uc.load(ctx, run, artifacts)
	}); err != nil {
		return false, err
	}

	// Record the processed snapshot so the next scheduled run can skip it
	if artifacts.meta != nil {
		if err := uc.watermark.SaveSnapshot(ctx, artifacts.meta.Fingerprint()); err != nil {
			log.Warnf("failed to save snapshot watermark: %v", err)
		}
	}

	return false, nil
}

// snapshotUnchanged compares the remote snapshot against the stored
// watermark. Check failures fall through to a normal run.
func (uc *pipelineUseCase) snapshotUnchanged(ctx context.Context) (bool, string) {
	meta, err := uc.dataset.Head(ctx)
	if err != nil {
		log.Warnf("snapshot freshness check failed, proceeding with the run: %v", err)
		return false, ""
	}

	last, err := uc.watermark.LastSnapshot(ctx)
	if err != nil {
		log.Warnf("could not read snapshot watermark, proceeding with the run: %v", err)
		return false, ""
	}

	fingerprint := meta.Fingerprint()
	return last != "" && last == fingerprint, fingerprint
}

// extract downloads the snapshot into the work directory
func (uc *pipelineUseCase) extract(ctx context.Context, run *entity.PipelineRun, artifacts *runArtifacts) error {
	if err := os.MkdirAll(uc.config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("failed to create work dir %s: %w", uc.config.WorkDir, err)
	}

	body, meta, err := uc.dataset.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer body.Close()

	rawPath := filepath.Join(uc.config.WorkDir, fmt.Sprintf("redfin_data_%s.tsv", run.Runstamp()))
	file, err := os.Create(rawPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", rawPath, err)
	}

	written, err := io.Copy(file, body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(rawPath)
		return fmt.Errorf("failed to write snapshot to %s: %w", rawPath, err)
	}

	artifacts.rawPath = rawPath
	artifacts.meta = meta
	run.SnapshotETag = meta.Fingerprint()

	log.Info("snapshot downloaded",
		zap.String("run_id", run.ID),
		zap.String("path", rawPath),
		zap.Int64("bytes", written))
	return nil
}

// transform reshapes the raw snapshot and uploads the CSV to the transform zone
func (uc *pipelineUseCase) transform(ctx context.Context, run *entity.PipelineRun, artifacts *runArtifacts) error {
	csvPath := filepath.Join(uc.config.WorkDir, fmt.Sprintf("redfin_data_%s.csv", run.Runstamp()))

	stats, err := uc.transformer.TransformFile(ctx, artifacts.rawPath, csvPath)
	if err != nil {
		return fmt.Errorf("failed to transform snapshot: %w", err)
	}
	run.RowsRead = stats.RowsRead
	run.RowsKept = stats.RowsKept
	run.RowsDropped = stats.RowsDropped

	key := uc.config.TransformPrefix + filepath.Base(csvPath)
	size, err := uc.store.UploadFile(ctx, uc.config.TransformBucket, key, csvPath)
	if err != nil {
		return fmt.Errorf("failed to upload transformed file: %w", err)
	}

	run.TransformBucket = uc.config.TransformBucket
	run.TransformKey = key
	artifacts.csvPath = csvPath
	artifacts.csvSize = size

	// The local transformed copy is done once uploaded
	if err := os.Remove(csvPath); err != nil {
		log.Warnf("failed to remove local transformed file %s: %v", csvPath, err)
	}

	log.Info("transformed file uploaded",
		zap.String("run_id", run.ID),
		zap.String("bucket", run.TransformBucket),
		zap.String("key", run.TransformKey),
		zap.Int64("rows_kept", run.RowsKept))
	return nil
}

// load moves the raw snapshot to the raw zone and notifies the ingest queue
func (uc *pipelineUseCase) load(ctx context.Context, run *entity.PipelineRun, artifacts *runArtifacts) error {
	key := uc.config.RawPrefix + filepath.Base(artifacts.rawPath)
	if _, err := uc.store.UploadFile(ctx, uc.config.RawBucket, key, artifacts.rawPath); err != nil {
		return fmt.Errorf("failed to upload raw snapshot: %w", err)
	}

	run.RawBucket = uc.config.RawBucket
	run.RawKey = key

	// Move semantics, the local copy goes away only after the upload landed
	if err := os.Remove(artifacts.rawPath); err != nil {
		log.Warnf("failed to remove local raw snapshot %s: %v", artifacts.rawPath, err)
	}

	if err := uc.notifyIngest(run, artifacts.csvSize); err != nil {
		return err
	}

	log.Info("raw snapshot moved",
		zap.String("run_id", run.ID),
		zap.String("bucket", run.RawBucket),
		zap.String("key", run.RawKey))
	return nil
}

// notifyIngest announces the transformed object to the warehouse pipe queue
func (uc *pipelineUseCase) notifyIngest(run *entity.PipelineRun, size int64) error {
	if uc.config.IngestQueue == "" || uc.queueSender == nil {
		return nil
	}

	notification := model.IngestNotification{
		RunID:     run.ID,
		Bucket:    run.TransformBucket,
		Key:       run.TransformKey,
		SizeBytes: size,
		RowCount:  run.RowsKept,
	}
	if err := uc.queueSender.SendMessage(uc.config.IngestQueue, notification); err != nil {
		return fmt.Errorf("failed to send ingest notification: %w", err)
	}
	return nil
}

func (uc *pipelineUseCase) publishRunEvent(ctx context.Context, run *entity.PipelineRun) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishRunEvent(ctx, run); err != nil {
		log.Warnf("failed to publish run event for %s: %v", run.ID, err)
	}
}
