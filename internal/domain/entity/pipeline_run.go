package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
	RunStatusSkipped   RunStatus = "skipped"
)

// IsTerminal reports whether the status ends a run.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusSucceeded || s == RunStatusFailed || s == RunStatusSkipped
}

type RunTrigger string

const (
	RunTriggerScheduled RunTrigger = "scheduled"
	RunTriggerManual    RunTrigger = "manual"
)

// PipelineRun is the ledger row of one pipeline execution.
type PipelineRun struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	Trigger    RunTrigger `json:"trigger"`
	Status     RunStatus  `json:"status"`
	StartedAt  time.Time  `json:"startedDate"`
	FinishedAt *time.Time `json:"finishedDate,omitempty"`

	SnapshotETag string `json:"snapshotEtag,omitempty"`
	RowsRead     int64  `json:"rowsRead"`
	RowsKept     int64  `json:"rowsKept"`
	RowsDropped  int64  `json:"rowsDropped"`

	RawBucket       string `json:"rawBucket,omitempty"`
	RawKey          string `json:"rawKey,omitempty"`
	TransformBucket string `json:"transformBucket,omitempty"`
	TransformKey    string `json:"transformKey,omitempty"`

	Message string `json:"message,omitempty"`
}

// NewPipelineRun creates a run in the running state with a fresh id.
func NewPipelineRun(trigger RunTrigger) *PipelineRun {
	return &PipelineRun{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
}

// Runstamp returns the UTC start time in the compact form used to name the
// run's objects.
func (r *PipelineRun) Runstamp() string {
	return r.StartedAt.UTC().Format("20060102T150405")
}

// MarkFinished moves the run to a terminal status. A run can only finish
// once, from the running state.
func (r *PipelineRun) MarkFinished(status RunStatus, message string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("run %s already finished with status %s", r.ID, r.Status)
	}
	if !status.IsTerminal() {
		return fmt.Errorf("status %s is not terminal", status)
	}
	now := time.Now().UTC()
	r.Status = status
	r.FinishedAt = &now
	r.Message = message
	return nil
}
