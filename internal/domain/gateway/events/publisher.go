package events

import (
	"context"

	"redfin-etl/internal/domain/entity"
)

// Publisher announces run state changes to interested listeners.
type Publisher interface {
	PublishRunEvent(ctx context.Context, run *entity.PipelineRun) error
}
