package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// DefaultPresignTTL is how long presigned URLs stay valid when not configured
const DefaultPresignTTL = 15 * time.Minute

// S3Options configures an S3-compatible bucket (AWS or MinIO)
type S3Options struct {
	Region       string
	Endpoint     string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	PresignTTL   time.Duration
}

// S3PhotoStore implements domain.PhotoStore with presigned S3 URLs
type S3PhotoStore struct {
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

// NewS3PhotoStore builds the presign client for opts
func NewS3PhotoStore(ctx context.Context, opts S3Options) (*S3PhotoStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	ttl := opts.PresignTTL
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}
	return &S3PhotoStore{
		presign: newS3PresignClient(client),
		bucket:  opts.Bucket,
		ttl:     ttl,
	}, nil
}

// PhotoKey returns a fresh object key for a photo of accountID
func PhotoKey(accountID uuid.UUID) string {
	return domain.PhotoKeyPrefix(accountID) + uuid.New().String()
}

// PresignUpload implements domain.PhotoStore
func (s *S3PhotoStore) PresignUpload(ctx context.Context, accountID uuid.UUID) (string, string, error) {
	key := PhotoKey(accountID)
	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", "", fmt.Errorf("s3: presign put: %w", err)
	}
	return key, req.URL, nil
}

// URL implements domain.PhotoStore
func (s *S3PhotoStore) URL(ctx context.Context, key string) (string, error) {
	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("s3: presign get: %w", err)
	}
	return req.URL, nil
}

// NoopPhotoStore is used when no bucket is configured. Stored keys are
// returned as-is and uploads are refused.
type NoopPhotoStore struct{}

// PresignUpload implements domain.PhotoStore
func (NoopPhotoStore) PresignUpload(ctx context.Context, accountID uuid.UUID) (string, string, error) {
	return "", "", domain.ErrPhotoStoreDisabled
}

// URL implements domain.PhotoStore
func (NoopPhotoStore) URL(ctx context.Context, key string) (string, error) {
	return key, nil
}

var (
	_ domain.PhotoStore = (*S3PhotoStore)(nil)
	_ domain.PhotoStore = NoopPhotoStore{}
)
