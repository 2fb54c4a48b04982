package health

import (
	"context"

	"redfin-etl/internal/domain/model"
)

type UseCase interface {
	// CheckHealth probes every application component and reports the
	// overall status
	CheckHealth(ctx context.Context) model.HealthResponse
}
