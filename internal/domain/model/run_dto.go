package model

type TriggerRunDTO struct {
	Force bool `json:"force"`
}

// RunTriggerMessage is the control queue payload that starts a manual run.
type RunTriggerMessage struct {
	RequestID string `json:"requestId"`
	Force     bool   `json:"force"`
}
