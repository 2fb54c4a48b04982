package aws

import (
	"redfin-etl/internal/domain/gateway/queue"
	"redfin-etl/pkg/sqs"
)

// SQSSenderAdapter adapts the pkg/sqs.Sender to implement domain queue.Sender interface
type SQSSenderAdapter struct {
	sqsSender *sqs.Sender
}

// NewSQSSenderAdapter creates a new SQS sender adapter that implements domain interface
func NewSQSSenderAdapter(sqsClient sqs.SQSClient) queue.Sender {
	return &SQSSenderAdapter{
		sqsSender: sqs.NewSender(sqsClient),
	}
}

// SendMessage implements the domain interface
func (adapter *SQSSenderAdapter) SendMessage(queueName string, body any) error {
	return adapter.sqsSender.SendMessage(queueName, body)
}

// SendMessageBatch implements the domain interface by converting types
func (adapter *SQSSenderAdapter) SendMessageBatch(queueName string, messages []queue.BatchMessage) (*queue.BatchResult, error) {
	// Convert domain types to SQS types
	sqsMessages := make([]sqs.BatchMessage, len(messages))
	for i, message := range messages {
		sqsMessages[i] = sqs.BatchMessage{
			MessageID: message.MessageID,
			Body:      message.Body,
		}
	}

	// Call the SQS-specific method
	result, err := adapter.sqsSender.SendMessageBatch(queueName, sqsMessages)
	if err != nil {
		return nil, err
	}

	// Convert SQS result back to domain type
	return &queue.BatchResult{
		Successful: result.Successful,
		Failed:     result.Failed,
	}, nil
}
