package sqs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type fakeReceiverClient struct {
	mu sync.Mutex

	queueURLError error
	delivered     bool
	messages      []types.Message
	deleted       []string
	deletedSignal chan struct{}
}

func (f *fakeReceiverClient) GetQueueUrl(ctx context.Context, params *awssqs.GetQueueUrlInput, optFns ...func(*awssqs.Options)) (*awssqs.GetQueueUrlOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queueURLError != nil {
		return nil, f.queueURLError
	}

	url := "https://sqs.test/" + *params.QueueName
	return &awssqs.GetQueueUrlOutput{QueueUrl: &url}, nil
}

func (f *fakeReceiverClient) ReceiveMessage(ctx context.Context, params *awssqs.ReceiveMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	first := !f.delivered
	f.delivered = true
	messages := f.messages
	f.mu.Unlock()

	if first {
		return &awssqs.ReceiveMessageOutput{Messages: messages}, nil
	}

	// Long poll simulation: block until the worker is stopped.
	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeReceiverClient) DeleteMessage(ctx context.Context, params *awssqs.DeleteMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	f.deleted = append(f.deleted, *params.ReceiptHandle)
	signal := f.deletedSignal
	f.mu.Unlock()

	if signal != nil {
		close(signal)
	}

	return &awssqs.DeleteMessageOutput{}, nil
}

func strPtr(s string) *string { return &s }

func TestNewWorkerValidatesConfig(t *testing.T) {
	handler := HandlerFunc(func(msg *types.Message) error { return nil })

	tests := []struct {
		name    string
		handler Handler
		config  *WorkerConfig
	}{
		{name: "too many messages", handler: handler, config: &WorkerConfig{MaxNumberOfMessages: 11}},
		{name: "wait time too long", handler: handler, config: &WorkerConfig{WaitTimeSeconds: 25}},
		{name: "negative pool size", handler: handler, config: &WorkerConfig{PoolSize: -1}},
		{name: "missing handler", handler: nil, config: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorker(&fakeReceiverClient{}, "trigger-queue", tt.handler, tt.config)
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNewWorkerFailsWhenQueueUnresolvable(t *testing.T) {
	client := &fakeReceiverClient{queueURLError: errors.New("no such queue")}
	handler := HandlerFunc(func(msg *types.Message) error { return nil })

	if _, err := NewWorker(client, "missing-queue", handler, nil); err == nil {
		t.Fatal("expected error for unresolvable queue")
	}
}

func TestWorkerProcessesAndDeletesMessage(t *testing.T) {
	deleted := make(chan struct{})
	client := &fakeReceiverClient{
		messages: []types.Message{
			{
				MessageId:     strPtr("msg-1"),
				ReceiptHandle: strPtr("receipt-1"),
				Body:          strPtr(`{"requestId":"req-1"}`),
			},
		},
		deletedSignal: deleted,
	}

	var handled []string
	var handledMu sync.Mutex
	handler := HandlerFunc(func(msg *types.Message) error {
		handledMu.Lock()
		handled = append(handled, *msg.Body)
		handledMu.Unlock()
		return nil
	})

	worker, err := NewWorker(client, "trigger-queue", handler, &WorkerConfig{PoolSize: 1})
	if err != nil {
		t.Fatalf("NewWorker returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	select {
	case <-deleted:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not deleted in time")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	handledMu.Lock()
	defer handledMu.Unlock()
	if len(handled) != 1 || handled[0] != `{"requestId":"req-1"}` {
		t.Errorf("handled = %v", handled)
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	if len(client.deleted) != 1 || client.deleted[0] != "receipt-1" {
		t.Errorf("deleted = %v, want [receipt-1]", client.deleted)
	}
}

func TestWorkerHealthCheck(t *testing.T) {
	client := &fakeReceiverClient{}
	handler := HandlerFunc(func(msg *types.Message) error { return nil })

	worker, err := NewWorker(client, "trigger-queue", handler, nil)
	if err != nil {
		t.Fatalf("NewWorker returned error: %v", err)
	}

	check := worker.HealthCheck()
	if check.Status != StatusUp {
		t.Errorf("status = %s, want UP", check.Status)
	}
	if check.Details["queue"] != "trigger-queue" {
		t.Errorf("queue detail = %q", check.Details["queue"])
	}

	client.mu.Lock()
	client.queueURLError = errors.New("queue gone")
	client.mu.Unlock()

	check = worker.HealthCheck()
	if check.Status != StatusDown {
		t.Errorf("status = %s, want DOWN", check.Status)
	}
}
