package entity

import (
	"testing"
	"time"
)

func TestNewPipelineRun(t *testing.T) {
	run := NewPipelineRun(RunTriggerManual)

	if run.ID == "" {
		t.Error("expected a generated run id")
	}
	if run.Status != RunStatusRunning {
		t.Errorf("Status = %q, want %q", run.Status, RunStatusRunning)
	}
	if run.Trigger != RunTriggerManual {
		t.Errorf("Trigger = %q, want %q", run.Trigger, RunTriggerManual)
	}
	if run.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestRunstamp(t *testing.T) {
	run := PipelineRun{StartedAt: time.Date(2023, time.April, 2, 8, 30, 15, 0, time.UTC)}

	if got := run.Runstamp(); got != "20230402T083015" {
		t.Errorf("Runstamp() = %q, want %q", got, "20230402T083015")
	}
}

func TestMarkFinished(t *testing.T) {
	run := NewPipelineRun(RunTriggerScheduled)

	if err := run.MarkFinished(RunStatusSucceeded, "done"); err != nil {
		t.Fatalf("MarkFinished returned error: %v", err)
	}
	if run.Status != RunStatusSucceeded {
		t.Errorf("Status = %q, want %q", run.Status, RunStatusSucceeded)
	}
	if run.FinishedAt == nil {
		t.Error("expected FinishedAt to be set")
	}
	if run.Message != "done" {
		t.Errorf("Message = %q, want %q", run.Message, "done")
	}
}

func TestMarkFinishedRejectsSecondTerminalState(t *testing.T) {
	run := NewPipelineRun(RunTriggerScheduled)

	if err := run.MarkFinished(RunStatusFailed, "boom"); err != nil {
		t.Fatalf("first MarkFinished returned error: %v", err)
	}
	if err := run.MarkFinished(RunStatusSucceeded, ""); err == nil {
		t.Error("expected error finishing an already finished run")
	}
}

func TestMarkFinishedRejectsNonTerminalStatus(t *testing.T) {
	run := NewPipelineRun(RunTriggerScheduled)

	if err := run.MarkFinished(RunStatusRunning, ""); err == nil {
		t.Error("expected error for non-terminal status")
	}
}

func TestRunStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   bool
	}{
		{RunStatusRunning, false},
		{RunStatusSucceeded, true},
		{RunStatusFailed, true},
		{RunStatusSkipped, true},
	}

	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
