package model

import (
	"fmt"
	"time"
)

// SnapshotMeta holds the remote snapshot identity returned by the dataset
// host (HEAD or GET response headers).
type SnapshotMeta struct {
	ETag          string    `json:"etag"`
	LastModified  time.Time `json:"lastModified"`
	ContentLength int64     `json:"contentLength"`
}

// Fingerprint returns the value compared against the stored watermark to
// detect an unchanged snapshot. The ETag wins when the host sends one.
func (m *SnapshotMeta) Fingerprint() string {
	if m.ETag != "" {
		return m.ETag
	}
	return fmt.Sprintf("%s/%d", m.LastModified.UTC().Format(time.RFC3339), m.ContentLength)
}
