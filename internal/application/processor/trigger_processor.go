package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/internal/domain/model"
	"redfin-etl/internal/domain/usecase/pipeline"
	"redfin-etl/pkg/log"
	"redfin-etl/pkg/msg"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type TriggerProcessor struct {
	pipelineUseCase pipeline.UseCase
}

func NewTriggerProcessor(pipelineUseCase pipeline.UseCase) *TriggerProcessor {
	return &TriggerProcessor{
		pipelineUseCase: pipelineUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface
func (p *TriggerProcessor) HandleMessage(message *types.Message) error {
	if message == nil || message.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	log.Infof("Processing trigger message: %s", *message.MessageId)

	// Parse the message body as a run trigger
	var trigger model.RunTriggerMessage
	if err := json.Unmarshal([]byte(*message.Body), &trigger); err != nil {
		log.Warnf("%s: %v", msg.GetMessage("trigger.error.invalid-payload"), err)
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	// Run the pipeline for the requested trigger
	run, err := p.pipelineUseCase.Execute(context.Background(), entity.RunTriggerManual, trigger.Force)
	if err != nil {
		return fmt.Errorf("failed to run pipeline for request %s: %w", trigger.RequestID, err)
	}

	log.Infof("Successfully processed trigger %s, run %s finished as %s", trigger.RequestID, run.ID, run.Status)
	return nil
}
