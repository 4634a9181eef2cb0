package service

import (
	"context"
	"fmt"

	"github.com/yamada-labo/prospectline/internal/platform/storage"
	"go.uber.org/zap"
)

// ArtifactMirror copies generated CSV/DOCX artifacts into object storage
// so a job's result stays fetchable after the in-process run ends. It is
// optional: a nil S3Client disables mirroring entirely.
type ArtifactMirror struct {
	s3  *storage.S3Client
	log *zap.Logger
}

// NewArtifactMirror builds a mirror. Pass a nil s3 client to disable it.
func NewArtifactMirror(s3 *storage.S3Client, log *zap.Logger) *ArtifactMirror {
	return &ArtifactMirror{s3: s3, log: log}
}

// Mirror uploads body under key and returns the key actually written, or
// an empty string if mirroring is disabled or the upload failed.
func (m *ArtifactMirror) Mirror(ctx context.Context, key string, body []byte, contentType string) string {
	if m == nil || m.s3 == nil || len(body) == 0 {
		return ""
	}
	if err := m.s3.PutObject(ctx, key, body, contentType); err != nil {
		if m.log != nil {
			m.log.Warn("artifact mirror upload failed", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return key
}

// CSVKey and DOCXKey name the object storage keys for a job's artifacts.
func CSVKey(jobID string) string  { return fmt.Sprintf("jobs/%s/result.csv", jobID) }
func DOCXKey(jobID string) string { return fmt.Sprintf("jobs/%s/summary.docx", jobID) }
