package schedule

import (
	"context"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/internal/domain/usecase/pipeline"
	"redfin-etl/pkg/log"
	"redfin-etl/pkg/msg"
	"redfin-etl/pkg/redis"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PipelineSchedulerConfig holds configuration for the pipeline scheduler
type PipelineSchedulerConfig struct {
	CronExpression  string
	LockTTL         int
	RefreshInterval int
}

// PipelineScheduler runs the weekly pipeline on a cron with distributed
// locking, so exactly one instance executes the scheduled run
type PipelineScheduler struct {
	scheduler   gocron.Scheduler
	useCase     pipeline.UseCase
	redisClient *redis.Client
	config      *PipelineSchedulerConfig
}

// NewPipelineScheduler creates a new pipeline scheduler with distributed locking support
func NewPipelineScheduler(useCase pipeline.UseCase, redisClient *redis.Client, cronExpression string, lockTTL int, refreshInterval int) (*PipelineScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &PipelineScheduler{
		scheduler:   scheduler,
		useCase:     useCase,
		redisClient: redisClient,
		config: &PipelineSchedulerConfig{
			CronExpression:  cronExpression,
			LockTTL:         lockTTL,
			RefreshInterval: refreshInterval,
		},
	}, nil
}

// InitPipelineScheduleTasks initializes the pipeline schedule with distributed locking
func (s *PipelineScheduler) InitPipelineScheduleTasks(ctx context.Context) {
	go func() {
		// Create a scheduled task lock with persistent refresh
		lock := redis.NewScheduledTaskLock(
			s.redisClient,
			"pipeline_scheduler",
			s.getLockTTL(),
			s.getRefreshInterval(),
			"pipeline_schedules",
		)

		err := lock.Lock(ctx)
		if err != nil {
			log.Error(msg.GetMessage("pipeline.cron.error.lock-failed", err))
			return
		}

		// Start auto-refresh to maintain the lock indefinitely
		refreshErrChan := lock.AutoRefresh(ctx)

		_, err = s.scheduler.NewJob(
			gocron.CronJob(s.config.CronExpression, false),
			gocron.NewTask(s.ExecuteScheduledRun),
		)
		if err != nil {
			log.Errorf("Failed to initialize pipeline scheduler, cron will not be started: %v", err)
			return
		}

		// Start the scheduler
		s.scheduler.Start()
		log.Infof("Pipeline scheduler started successfully with cron expression: %s", s.config.CronExpression)

		// Monitor auto-refresh errors and stop the scheduler if refresh fails
		err = <-refreshErrChan

		if shutdownErr := s.scheduler.Shutdown(); shutdownErr != nil {
			log.Errorf("Failed to shut down pipeline scheduler: %v", shutdownErr)
		}

		if err != nil {
			log.Errorf("Pipeline scheduler stopped due to auto-refresh failure: %v", err)
		} else {
			log.Info("Pipeline scheduler stopped gracefully")
		}
	}()
}

// ExecuteScheduledRun executes one scheduled pipeline run
func (s *PipelineScheduler) ExecuteScheduledRun() {
	// Generate request ID for tracking
	requestID := uuid.New().String()

	log.Info(msg.GetMessage("pipeline.cron.start"), zap.String("request_id", requestID))

	run, err := s.useCase.Execute(context.Background(), entity.RunTriggerScheduled, false)
	if err != nil {
		log.Error(msg.GetMessage("pipeline.cron.error.run-failed", err),
			zap.String("request_id", requestID),
			zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("pipeline.cron.end"),
		zap.String("request_id", requestID),
		zap.String("run_id", run.ID),
		zap.String("status", string(run.Status)))
}

// Stop gracefully stops the scheduler
func (s *PipelineScheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		log.Warnf("Failed to shut down pipeline scheduler: %v", err)
	}
}

// Helper methods to get lock timing values from config
func (s *PipelineScheduler) getLockTTL() int {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 600 // Default: 10 minutes
}

func (s *PipelineScheduler) getRefreshInterval() int {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 60 // Default: 1 minute
}
