// Package s3archive provides the archival storage adapter backed by S3
// compatible object storage.
package s3archive

import (
	"bytes"
	"context"
	"time"

	"orderflow/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sony/gobreaker/v2"
)

// objectAPI is the slice of the S3 client the store needs.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store implements ports.ArchiveStore on an S3 bucket. Writes go through a
// circuit breaker so a storage outage fails fast instead of stalling the
// audit consumer on every event; failed events stay unmarked on the bus and
// are redelivered once the breaker closes again.
type Store struct {
	client  objectAPI
	bucket  string
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewStore creates an archive store for the given bucket.
func NewStore(client *s3.Client, bucket string) (*Store, error) {
	return newStore(client, bucket)
}

func newStore(client objectAPI, bucket string) (*Store, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "archive-store",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Store{client: client, bucket: bucket, breaker: breaker}, nil
}

// Put writes body under key, overwriting any previous object.
func (s *Store) Put(ctx context.Context, key string, body []byte) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}

	_, err := s.breaker.Execute(func() (struct{}, error) {
		_, putErr := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		return struct{}{}, putErr
	})
	return err
}
