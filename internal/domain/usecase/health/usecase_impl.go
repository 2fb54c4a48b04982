package health

import (
	"context"
	"sync"

	"redfin-etl/internal/domain/gateway/cache"
	"redfin-etl/internal/domain/gateway/db"
	"redfin-etl/internal/domain/gateway/queue"
	"redfin-etl/internal/domain/gateway/storage"
	"redfin-etl/internal/domain/model"
)

type healthUseCase struct {
	dbGateway      db.HealthDBGateway
	cacheGateway   cache.HealthCacheGateway
	queueGateway   queue.HealthGateway
	storageGateway storage.HealthStorageGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, cacheGateway cache.HealthCacheGateway, queueGateway queue.HealthGateway, storageGateway storage.HealthStorageGateway) UseCase {
	return &healthUseCase{
		dbGateway:      dbGateway,
		cacheGateway:   cacheGateway,
		queueGateway:   queueGateway,
		storageGateway: storageGateway,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	var wg sync.WaitGroup
	var dbHealth, cacheHealth, queueHealth, storageHealth model.ComponentHealthStatus

	// Probe every component in parallel
	wg.Add(4)
	go func() {
		defer wg.Done()
		dbHealth = useCase.dbGateway.Health()
	}()
	go func() {
		defer wg.Done()
		cacheHealth = useCase.cacheGateway.Health(ctx)
	}()
	go func() {
		defer wg.Done()
		queueHealth = useCase.queueGateway.Health()
	}()
	go func() {
		defer wg.Done()
		storageHealth = useCase.storageGateway.Health(ctx)
	}()
	wg.Wait()

	// Only DOWN components fail the application, UNKNOWN ones do not
	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{dbHealth, cacheHealth, queueHealth, storageHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
			break
		}
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Cache:    cacheHealth,
		Queue:    queueHealth,
		Storage:  storageHealth,
	}
}
