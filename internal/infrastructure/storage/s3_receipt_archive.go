// Package storage archives settlement receipts in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	infraconfig "github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/config"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var _ appfinance.ReceiptArchive = (*S3ReceiptArchive)(nil)

// S3API is the subset of the S3 client the archive uses
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3ReceiptArchive writes each settlement receipt as one JSON object under
// <prefix>/<yyyy>/<mm>/<receipt_no>.json. Writes go through a circuit
// breaker so a failing store is skipped instead of retried on every settlement.
type S3ReceiptArchive struct {
	client  S3API
	bucket  string
	prefix  string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// Option configures an S3ReceiptArchive
type Option func(*archiveOptions)

type archiveOptions struct {
	logger  *zap.Logger
	breaker BreakerConfig
}

// WithLogger sets the archive logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *archiveOptions) {
		o.logger = logger
	}
}

// WithBreaker overrides the circuit breaker settings
func WithBreaker(cfg BreakerConfig) Option {
	return func(o *archiveOptions) {
		o.breaker = cfg
	}
}

// NewS3ReceiptArchive creates an archive from configuration. Any
// S3-compatible endpoint works (AWS S3, MinIO, RustFS).
func NewS3ReceiptArchive(ctx context.Context, cfg *infraconfig.StorageConfig, opts ...Option) (*S3ReceiptArchive, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage access key and secret key are required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return NewS3ReceiptArchiveWithClient(client, cfg.Bucket, cfg.KeyPrefix, cfg.Timeout, opts...), nil
}

// NewS3ReceiptArchiveWithClient creates an archive over an existing client
func NewS3ReceiptArchiveWithClient(client S3API, bucket, prefix string, timeout time.Duration, opts ...Option) *S3ReceiptArchive {
	o := archiveOptions{
		logger:  zap.NewNop(),
		breaker: DefaultBreakerConfig("receipt-archive"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &S3ReceiptArchive{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		timeout: timeout,
		breaker: newBreaker(o.breaker, o.logger),
		logger:  o.logger,
	}
}

// ReceiptKey returns the object key of a receipt
func ReceiptKey(prefix string, receipt *finance.SettlementReceipt) string {
	date := receipt.PaymentDate
	if date.IsZero() {
		date = receipt.IssuedAt
	}
	return path.Join(strings.Trim(prefix, "/"), date.Format("2006"), date.Format("01"), receipt.ReceiptNo+".json")
}

// Put uploads the receipt and returns its object key
func (a *S3ReceiptArchive) Put(ctx context.Context, receipt *finance.SettlementReceipt) (string, error) {
	if receipt == nil || receipt.ReceiptNo == "" {
		return "", errors.New("receipt number is required")
	}
	body, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode receipt: %w", err)
	}
	key := ReceiptKey(a.prefix, receipt)

	err = execute(a.breaker, func() error {
		putCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		_, err := a.client.PutObject(putCtx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
			Metadata: map[string]string{
				"receipt-no":   receipt.ReceiptNo,
				"partner-id":   receipt.PartnerID.String(),
				"partner-type": string(receipt.PartnerType),
			},
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt %s: %w", receipt.ReceiptNo, err)
	}
	return key, nil
}

// EnsureBucket creates the bucket if it does not exist
func (a *S3ReceiptArchive) EnsureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	a.logger.Info("Creating receipt bucket", zap.String("bucket", a.bucket))
	_, err = a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(a.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Bucket returns the bucket name
func (a *S3ReceiptArchive) Bucket() string {
	return a.bucket
}
