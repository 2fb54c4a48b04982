package queue

import (
	"redfin-etl/internal/domain/model"
	"redfin-etl/pkg/sqs"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker *sqs.Worker)
	UnregisterWorker(name string)
}
