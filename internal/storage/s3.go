// Package storage publishes saved reports to remote stores.
package storage

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hashicorp/go-hclog"
)

// S3Publisher uploads report files to an S3 bucket.
type S3Publisher struct {
	bucket   string
	uploader *s3manager.Uploader
	logger   hclog.Logger
}

// NewS3Publisher builds a publisher for one bucket. Credentials come from the
// default AWS chain (environment, shared config, instance role).
func NewS3Publisher(bucket, region string, logger hclog.Logger) (*S3Publisher, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	return &S3Publisher{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
		logger:   logger,
	}, nil
}

// Publish uploads one local file under the given key prefix and returns the
// object location.
func (p *S3Publisher) Publish(filePath, keyPrefix string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open results file %q: %w", filePath, err)
	}
	defer f.Close()

	key := ObjectKey(keyPrefix, filePath)
	p.logger.Info("uploading report", "bucket", p.bucket, "key", key)

	result, err := p.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to s3: %w", err)
	}

	p.logger.Info("report uploaded", "location", result.Location)
	return result.Location, nil
}

// ObjectKey joins the optional prefix with the file base name using forward
// slashes. Backslash separators are normalized explicitly so paths copied
// from Windows hosts still yield a clean base name.
func ObjectKey(keyPrefix, filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, `\`, "/"))
	if keyPrefix == "" {
		return base
	}
	return path.Join(keyPrefix, base)
}
