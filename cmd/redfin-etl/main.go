package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "redfin-etl/configs"
	_ "redfin-etl/docs"
	"redfin-etl/internal/application/controller"
	"redfin-etl/internal/application/middleware"
	"redfin-etl/internal/application/processor"
	"redfin-etl/internal/application/schedule"
	apigw "redfin-etl/internal/domain/gateway/api"
	"redfin-etl/internal/domain/gateway/cache"
	"redfin-etl/internal/domain/gateway/db"
	"redfin-etl/internal/domain/gateway/events"
	"redfin-etl/internal/domain/gateway/queue"
	"redfin-etl/internal/domain/gateway/storage"
	"redfin-etl/internal/domain/usecase/catalog"
	"redfin-etl/internal/domain/usecase/health"
	"redfin-etl/internal/domain/usecase/pipeline"
	"redfin-etl/internal/infra/aws"
	"redfin-etl/internal/infra/database/gorm"
	"redfin-etl/pkg/http"
	"redfin-etl/pkg/log"
	"redfin-etl/pkg/msg"
	"redfin-etl/pkg/redis"
	"redfin-etl/pkg/resource"
	"redfin-etl/pkg/sqs"
	"redfin-etl/pkg/util/retry"
)

// @title Redfin ETL API
// @version 1.0
// @description Scheduled ETL service for the Redfin housing market snapshot
// @BasePath /redfin-etl
func main() {
	log.Info(msg.GetMessage("app.start"))
	ctx := context.Background()

	// Init infra
	e := echo.New()
	middleware.SetupRequestLogger(e)
	api := e.Group(resource.GetString("app.server.context-path"))

	redisConfig := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database"))
	redisClient, err := redis.NewClient(redisConfig)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	s3Client := aws.NewS3Client()
	sqsClient := aws.NewSqsClient()
	store := aws.NewS3ObjectStore(s3Client)

	rawBucket := resource.GetString("app.storage.raw-bucket")
	transformBucket := resource.GetString("app.storage.transform-bucket")

	// Init Gateways
	datasetGateway, err := apigw.NewDatasetGateway(resource.GetString("app.dataset.source-url"), http.ClientOptions{
		ReadTimeout: resource.GetDuration("app.dataset.request-timeout"),
	})
	if err != nil {
		log.Fatalf("Failed to create dataset gateway: %v", err)
	}
	runGateway := db.NewGormRunGateway(gorm.Db)
	watermarkGateway := cache.NewRedisWatermarkGateway(redisClient)
	queueSender := aws.NewSQSSenderAdapter(sqsClient)
	runEventPublisher := events.NewRedisRunEventPublisher(redisClient,
		resource.GetString("app.name"),
		resource.GetString("app.redis.run-events-channel"))

	dbHealthGateway := db.NewGormHealthDBGateway(gorm.Db)
	cacheHealthGateway := cache.NewRedisHealthCacheGateway(redisClient)
	queueHealthGateway := queue.NewQueueHealthGateway()
	storageHealthGateway := storage.NewBucketHealthGateway(store, rawBucket, transformBucket)

	// Init UseCase
	pipelineConfig := pipeline.Config{
		WorkDir:         resource.GetString("app.pipeline.work-dir"),
		RawBucket:       rawBucket,
		RawPrefix:       resource.GetString("app.storage.raw-prefix"),
		TransformBucket: transformBucket,
		TransformPrefix: resource.GetString("app.storage.transform-prefix"),
		IngestQueue:     resource.GetString("app.queue.ingest-queue"),
		SkipUnchanged:   resource.GetBool("app.pipeline.skip-unchanged"),
		Retry: retry.NewConfig().
			WithMaxAttempts(resource.GetInt("app.pipeline.retry.max-attempts")).
			WithDelay(resource.GetDuration("app.pipeline.retry.delay")).
			WithMultiplier(resource.GetFloat64("app.pipeline.retry.multiplier")),
		PeriodBeginFrom: resource.GetString("app.transform.period-begin-from"),
		PeriodBeginTo:   resource.GetString("app.transform.period-begin-to"),
	}
	pipelineUseCase, err := pipeline.NewPipelineUseCase(pipelineConfig, datasetGateway, store,
		runGateway, watermarkGateway, queueSender, runEventPublisher)
	if err != nil {
		log.Fatalf("Failed to create pipeline use case: %v", err)
	}

	retention := time.Duration(resource.GetInt("app.catalog.retention-days")) * 24 * time.Hour
	catalogUseCase := catalog.NewCatalogUseCase(retention, pipelineConfig.WorkDir, runGateway)
	healthUseCase := health.NewHealthUseCase(dbHealthGateway, cacheHealthGateway, queueHealthGateway, storageHealthGateway)

	// Init Controller
	healthController := controller.NewHealthController(api, healthUseCase)
	runController := controller.NewRunController(api, catalogUseCase, pipelineUseCase)

	// Init Routes
	healthController.InitHealthRoutes()
	runController.InitRunRoutes()
	api.GET("/swagger/*", echoSwagger.WrapHandler)

	// Init trigger queue worker
	if resource.GetBool("app.queue.trigger.enabled") {
		triggerProcessor := processor.NewTriggerProcessor(pipelineUseCase)
		triggerWorker, err := sqs.NewWorker(sqsClient, resource.GetString("app.queue.trigger.queue"), triggerProcessor, &sqs.WorkerConfig{
			MaxNumberOfMessages: int32(resource.GetInt("app.queue.trigger.max-messages")),
			WaitTimeSeconds:     int32(resource.GetInt("app.queue.trigger.wait-time-seconds")),
			PoolSize:            resource.GetInt("app.queue.trigger.pool-size"),
		})
		if err != nil {
			log.Fatalf("Failed to create trigger worker: %v", err)
		}
		queueHealthGateway.RegisterWorker("trigger", triggerWorker)
		go triggerWorker.Start(ctx)
	}

	// Init Schedule
	pipelineScheduler, err := schedule.NewPipelineScheduler(pipelineUseCase, redisClient,
		resource.GetString("app.pipeline.cron"),
		resource.GetInt("app.pipeline.lock.ttl-seconds"),
		resource.GetInt("app.pipeline.lock.refresh-seconds"))
	if err != nil {
		log.Fatalf("Failed to create pipeline scheduler: %v", err)
	}
	pipelineScheduler.InitPipelineScheduleTasks(ctx)

	retentionScheduler := schedule.NewRetentionScheduler(catalogUseCase)
	retentionScheduler.InitRetentionScheduleTasks()

	// Start Routes
	e.Logger.Fatal(e.Start(":" + resource.GetString("app.server.port")))
	log.Info(msg.GetMessage("app.started"))
}
