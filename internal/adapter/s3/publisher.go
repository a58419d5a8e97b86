// Package s3 publishes processed station files to the archive bucket.
package s3

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/couchcryptid/gsod-archive-etl/internal/config"
)

// Publisher uploads local Parquet files to S3 under deterministic keys.
// It implements pipeline.Publisher.
type Publisher struct {
	uploader *manager.Uploader
	bucket   string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewPublisher builds the S3 client from the run configuration. When
// explicit access keys are configured they take priority; otherwise the SDK
// default credential chain applies. Construction never talks to AWS, so a
// missing bucket or bad credentials surface on the first Publish call and
// stay a per-file failure.
func NewPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Publisher, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Publisher{
		uploader: manager.NewUploader(awss3.NewFromConfig(awsCfg)),
		bucket:   cfg.S3Bucket,
		timeout:  cfg.PublishTimeout,
		logger:   logger,
	}, nil
}

// Publish uploads one local file under the given key. Single attempt with a
// bounded timeout; on failure the local file is left in place so the next
// run can republish it.
func (p *Publisher) Publish(ctx context.Context, localPath, key string) error {
	if p.bucket == "" {
		return fmt.Errorf("upload %s: S3_BUCKET_NAME is not set", localPath)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.uploader.Upload(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", p.bucket, key, err)
	}

	p.logger.Debug("uploaded object", "bucket", p.bucket, "key", key)
	return nil
}
