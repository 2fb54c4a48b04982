package db

import "redfin-etl/internal/domain/model"

type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}
