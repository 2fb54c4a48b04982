package sqs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"redfin-etl/pkg/log"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// HandlerFunc defines a function that handles a SQS Message
type HandlerFunc func(msg *types.Message) error

// HandleMessage implements the Handler interface for HandlerFunc
func (f HandlerFunc) HandleMessage(msg *types.Message) error {
	return f(msg)
}

// Handler defines an interface that processes a SQS Message
type Handler interface {
	HandleMessage(msg *types.Message) error
}

// LogLevel represents the logging level for the Worker
type LogLevel int

const (
	// Silent demotes all worker logs to debug
	Silent LogLevel = iota
	// ErrorLevel logs only errors
	ErrorLevel
	// InfoLevel logs informational and error messages
	InfoLevel
)

// HealthStatus represents the health status of a worker
type HealthStatus string

const (
	// StatusUp indicates the worker can reach its queue
	StatusUp HealthStatus = "UP"
	// StatusDown indicates the worker cannot reach its queue
	StatusDown HealthStatus = "DOWN"
)

// WorkerHealthCheck represents the health check response for a worker
type WorkerHealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// ReceiverClient defines the SQS operations a worker needs
type ReceiverClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// WorkerConfig defines the configuration options for a Worker
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
	LogLevel            LogLevel
}

// Worker polls and processes messages from a SQS queue
type Worker struct {
	sqsClient           ReceiverClient
	queueName           string
	queueURL            string
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	poolSize            int
	logLevel            LogLevel
	handler             Handler

	processed atomic.Int64
	failed    atomic.Int64
	lastPoll  atomic.Int64
}

// NewWorker creates and returns a new Worker.
//
// If the provided WorkerConfig is nil or its fields are zero,
// the following defaults will be used:
//   - MaxNumberOfMessages: 10
//   - WaitTimeSeconds: 20
//   - PoolSize: 1
//   - LogLevel: Silent
//
// Validations:
//   - MaxNumberOfMessages must be between 1 and 10.
//   - WaitTimeSeconds must be between 1 and 20.
//   - PoolSize must be greater than 0.
func NewWorker(sqsClient ReceiverClient, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	var maxMessages int32 = 10
	var waitTime int32 = 20
	poolSize := 1
	logLevel := Silent

	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			maxMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			waitTime = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			poolSize = config.PoolSize
		}
		logLevel = config.LogLevel
	}

	if maxMessages < 1 || maxMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if waitTime < 1 || waitTime > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if poolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}
	if handler == nil {
		return nil, errors.New("handler is required")
	}

	result, err := sqsClient.GetQueueUrl(context.Background(), &sqs.GetQueueUrlInput{
		QueueName: &queueName,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to get queue URL: %w", err)
	}

	return &Worker{
		sqsClient:           sqsClient,
		queueName:           queueName,
		queueURL:            *result.QueueUrl,
		maxNumberOfMessages: maxMessages,
		waitTimeSeconds:     waitTime,
		poolSize:            poolSize,
		logLevel:            logLevel,
		handler:             handler,
	}, nil
}

// Start begins polling messages and processing them concurrently.
// It will spawn PoolSize number of workers that keep polling messages
// until the provided context is canceled.
func (w *Worker) Start(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.pollMessages(ctx)
		}()
	}

	wg.Wait()
}

// HealthCheck verifies the worker can still resolve its queue and reports
// processing counters.
func (w *Worker) HealthCheck() WorkerHealthCheck {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	details := map[string]string{
		"queue":     w.queueName,
		"pool_size": strconv.Itoa(w.poolSize),
		"processed": strconv.FormatInt(w.processed.Load(), 10),
		"failed":    strconv.FormatInt(w.failed.Load(), 10),
	}
	if lastPoll := w.lastPoll.Load(); lastPoll > 0 {
		details["last_poll"] = time.Unix(lastPoll, 0).UTC().Format(time.RFC3339)
	}

	if _, err := w.sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: &w.queueName}); err != nil {
		details["error"] = err.Error()
		return WorkerHealthCheck{Status: StatusDown, Details: details}
	}

	return WorkerHealthCheck{Status: StatusUp, Details: details}
}

func (w *Worker) pollMessages(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			output, err := w.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
				QueueUrl:            &w.queueURL,
				MaxNumberOfMessages: w.maxNumberOfMessages,
				WaitTimeSeconds:     w.waitTimeSeconds,
			})
			w.lastPoll.Store(time.Now().Unix())
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				w.logf(ErrorLevel, "failed to receive messages: %v", err)
				continue
			}

			for _, msg := range output.Messages {
				go w.handleMessage(ctx, msg)
			}
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg types.Message) {
	err := w.handler.HandleMessage(&msg)
	if err != nil {
		w.failed.Add(1)
		w.logf(ErrorLevel, "error processing message ID %s: %v", safeMessageID(&msg), err)
		return
	}

	w.processed.Add(1)

	_, err = w.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &w.queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		w.logf(ErrorLevel, "failed to delete message ID %s: %v", safeMessageID(&msg), err)
	} else {
		w.logf(InfoLevel, "successfully deleted message ID %s", safeMessageID(&msg))
	}
}

func (w *Worker) logf(level LogLevel, format string, v ...interface{}) {
	if w.logLevel == Silent {
		log.Debugf(format, v...)
	}
	if level == ErrorLevel && (w.logLevel == ErrorLevel || w.logLevel == InfoLevel) {
		log.Errorf(format, v...)
	}
	if level == InfoLevel && w.logLevel == InfoLevel {
		log.Infof(format, v...)
	}
}

func safeMessageID(msg *types.Message) string {
	if msg == nil || msg.MessageId == nil {
		return ""
	}
	return *msg.MessageId
}
