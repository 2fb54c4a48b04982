package model

// IngestNotification announces a transformed object to the warehouse pipe's
// notification queue.
type IngestNotification struct {
	RunID     string `json:"runId"`
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	SizeBytes int64  `json:"sizeBytes"`
	RowCount  int64  `json:"rowCount"`
}
