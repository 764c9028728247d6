// Package upload stores storefront images in an S3 bucket.
package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Sentinel errors let callers distinguish misconfiguration from transient
// storage failures.
var (
	ErrBucketNotFound = errors.New("upload bucket does not exist")
	ErrPolicyDenied   = errors.New("upload denied by bucket policy")
	ErrBadDataURI     = errors.New("malformed data uri")
	ErrNotConfigured  = errors.New("uploads are not configured")
)

// Image is a decoded data-URI payload ready for storage.
type Image struct {
	ContentType string
	Data        []byte
}

// ParseDataURI decodes a "data:<mime>;base64,<payload>" string. Only base64
// image payloads are accepted.
func ParseDataURI(uri string) (Image, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return Image{}, ErrBadDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, ErrBadDataURI
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || !strings.HasPrefix(contentType, "image/") {
		return Image{}, ErrBadDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, ErrBadDataURI
	}
	return Image{ContentType: contentType, Data: data}, nil
}

// Uploader pushes images to a bucket and returns their public URLs.
type Uploader interface {
	Upload(ctx context.Context, img Image) (string, error)
}

// Disabled is the Uploader used when no bucket is configured.
type Disabled struct{}

var _ Uploader = Disabled{}

func (Disabled) Upload(context.Context, Image) (string, error) {
	return "", ErrNotConfigured
}

// S3Uploader implements Uploader on top of the AWS SDK upload manager.
type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
}

var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader builds an S3Uploader from the ambient AWS configuration
// (environment credentials, shared config, or instance role).
func NewS3Uploader(ctx context.Context, bucket string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	client := s3.NewFromConfig(cfg)
	return &S3Uploader{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}, nil
}

// Upload stores the image under a unique key and returns its public URL.
// Keys embed the upload timestamp so listing the bucket stays chronological.
func (u *S3Uploader) Upload(ctx context.Context, img Image) (string, error) {
	ext := "bin"
	if _, sub, ok := strings.Cut(img.ContentType, "/"); ok {
		ext = sub
	}
	key := fmt.Sprintf("images/%s-%s.%s", time.Now().UTC().Format("20060102150405"), uuid.New().String(), ext)

	result, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ACL:         "public-read",
		ContentType: aws.String(img.ContentType),
	})
	if err != nil {
		return "", categorize(err)
	}
	return result.Location, nil
}

// categorize maps S3 API errors onto the package sentinels.
func categorize(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "AccessDenied":
			return ErrPolicyDenied
		}
	}
	return errors.Wrap(err, "upload image")
}
