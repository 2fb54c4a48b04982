package schedule

import (
	"redfin-etl/internal/domain/usecase/catalog"
	"redfin-etl/pkg/log"
	"redfin-etl/pkg/msg"
	"redfin-etl/pkg/resource"

	"github.com/robfig/cron/v3"
)

type RetentionScheduler struct {
	cron    *cron.Cron
	useCase catalog.UseCase
}

func NewRetentionScheduler(useCase catalog.UseCase) *RetentionScheduler {
	return &RetentionScheduler{cron: cron.New(), useCase: useCase}
}

// InitRetentionScheduleTasks initializes run retention schedule tasks
func (scheduler *RetentionScheduler) InitRetentionScheduleTasks() {
	_, err := scheduler.cron.AddFunc(resource.GetString("app.catalog.retention-cron"), scheduler.ClearExpiredRuns)

	if err != nil {
		panic(err)
	}

	scheduler.cron.Start()
}

func (scheduler *RetentionScheduler) ClearExpiredRuns() {
	log.Info(msg.GetMessage("catalog.cron.start"))

	deleted, err := scheduler.useCase.ClearExpired()

	if err != nil {
		log.Error(msg.GetMessage("catalog.cron.error.clear-failed", err))
		return
	}

	log.Infof("%s, removed %d runs", msg.GetMessage("catalog.cron.end"), deleted)
}
