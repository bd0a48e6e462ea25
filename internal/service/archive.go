package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pageza/dietwise/backend/config"
	"github.com/pageza/dietwise/backend/internal/models"
)

// ObjectPutter is the subset of the S3 client used by S3Archiver
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver uploads each persisted adjustment to adjustments/{uid}/{date}.json
type S3Archiver struct {
	client ObjectPutter
	bucket string
}

var _ AdjustmentArchiver = (*S3Archiver)(nil)

func NewS3Archiver(client ObjectPutter, bucket string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket}
}

// NewArchiver returns an S3Archiver for s3Config, or nil when archiving is not configured.
func NewArchiver(s3Config *config.S3Config) AdjustmentArchiver {
	if s3Config == nil {
		return nil
	}
	return NewS3Archiver(s3Config.Client, s3Config.BucketName)
}

func archiveKey(userID, dateKey string) string {
	return fmt.Sprintf("adjustments/%s/%s.json", userID, dateKey)
}

func (a *S3Archiver) Archive(ctx context.Context, userID, dateKey string, adj *models.AIAdjustment) error {
	data, err := json.Marshal(adj)
	if err != nil {
		return fmt.Errorf("failed to marshal adjustment: %w", err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(archiveKey(userID, dateKey)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}
