package db

import (
	"errors"
	"time"

	"redfin-etl/internal/domain/entity"

	"gorm.io/gorm"
)

type GormRunGateway struct {
	DB *gorm.DB
}

var _ RunGateway = (*GormRunGateway)(nil)

func NewGormRunGateway(db *gorm.DB) *GormRunGateway {
	return &GormRunGateway{DB: db}
}

func (gateway *GormRunGateway) Create(run *entity.PipelineRun) error {
	return gateway.DB.Create(run).Error
}

func (gateway *GormRunGateway) Update(run *entity.PipelineRun) error {
	return gateway.DB.Save(run).Error
}

func (gateway *GormRunGateway) FindByID(id string) (*entity.PipelineRun, error) {
	var run entity.PipelineRun
	err := gateway.DB.First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (gateway *GormRunGateway) FindAll(page int, size int) ([]entity.PipelineRun, error) {
	runs := make([]entity.PipelineRun, 0)
	err := gateway.DB.
		Order("started_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&runs).Error
	return runs, err
}

func (gateway *GormRunGateway) FindLatest() (*entity.PipelineRun, error) {
	var run entity.PipelineRun
	err := gateway.DB.Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (gateway *GormRunGateway) CountAll() (int64, error) {
	var count int64
	err := gateway.DB.Model(&entity.PipelineRun{}).Count(&count).Error
	return count, err
}

func (gateway *GormRunGateway) DeleteFinishedBefore(cutoff time.Time) (int64, error) {
	result := gateway.DB.
		Where("finished_at IS NOT NULL AND finished_at < ?", cutoff).
		Delete(&entity.PipelineRun{})
	return result.RowsAffected, result.Error
}
