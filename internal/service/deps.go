package service

import (
	"context"
	"io"

	infraKafka "github.com/ramdanolii14/nyantube-sub000/internal/infra/kafka"
)

// ObjectStore is the slice of object storage the services use. Implemented by
// infra/minio.Store; tests substitute fakes.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, bucket, objectName string) error
	PublicURL(bucket, objectName string) string
}

// EventPublisher emits notification events. Implemented by
// infra/kafka.NotificationPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, event *infraKafka.NotificationEvent) error
}

// CaptchaVerifier validates client captcha tokens. Implemented by
// captcha.Verifier.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// ViewDeduper decides whether a watch should bump the view counter.
// Implemented by infra/redis.ViewDeduper.
type ViewDeduper interface {
	ShouldCount(ctx context.Context, videoID int64, viewerKey string) bool
}

// SearchIndexer keeps the search index in step with the videos table.
// Implemented by SearchService.
type SearchIndexer interface {
	SyncVideo(videoID int64) error
	RemoveVideo(videoID int64) error
}
