package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"newsagent/config"
	"newsagent/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// objectPutter is the part of *s3.Client the archive needs.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive writes one JSON object per article under
// <prefix>articles/<yyyy>/<mm>/<dd>/<uuid>.json.
type S3Archive struct {
	client objectPutter
	bucket string
	prefix string
}

// NewS3Archive creates an archive using the default AWS configuration chain,
// with optional overrides from cfg. cfg.Bucket must be set.
func NewS3Archive(ctx context.Context, cfg config.S3Config) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: S3 bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS config: %w", err)
	}

	c := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3Archive(c, cfg.Bucket, cfg.Prefix), nil
}

func newS3Archive(c objectPutter, bucket, prefix string) *S3Archive {
	return &S3Archive{client: c, bucket: bucket, prefix: prefix}
}

// Save uploads the article as a new object. Keys are random, so duplicate
// titles or URLs never overwrite each other.
func (s *S3Archive) Save(ctx context.Context, a *types.Article) error {
	rec := newRecord(a)
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal article: %w", err)
	}

	key := fmt.Sprintf("%sarticles/%s/%s.json", s.prefix, rec.CreatedAt.Format("2006/01/02"), uuid.NewString())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(b),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("public, max-age=300"),
	})
	if err != nil {
		return fmt.Errorf("storage: upload %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *S3Archive) Close() error { return nil }
