// -----------------------------------------------------------------------
// S3 Service - Object storage operations over aws-sdk-go-v2
// Credentials come from the config file when present, else the default
// AWS credential chain (env vars, ~/.aws/credentials, IAM role).
// -----------------------------------------------------------------------

package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/common"
)

// DefaultListLimit caps how many keys one list call returns.
const DefaultListLimit = 100

// Object holds S3 object metadata
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
}

// ObjectContent is an object with its body loaded
type ObjectContent struct {
	Object
	ContentType string
	Body        []byte
}

// Service provides object storage operations against one configured
// account
type Service struct {
	config common.S3Config
	client *awss3.Client
	logger arbor.ILogger
}

// NewService creates an S3 service. The SDK client is built lazily on
// first use so a server with the module disabled never touches AWS
// config.
func NewService(config common.S3Config, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

func (s *Service) getClient(ctx context.Context) (*awss3.Client, error) {
	if s.client != nil {
		return s.client, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s.config.Region),
	}
	if s.config.AccessKey != "" && s.config.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.config.AccessKey, s.config.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s.client = awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if s.config.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.config.Endpoint)
			o.UsePathStyle = true
		}
	})

	return s.client, nil
}

// Bucket resolves an explicit bucket argument against the configured
// default
func (s *Service) Bucket(bucket string) (string, error) {
	if bucket != "" {
		return bucket, nil
	}
	if s.config.Bucket != "" {
		return s.config.Bucket, nil
	}
	return "", fmt.Errorf("no bucket given and no default bucket configured")
}

// List returns objects under a prefix, up to maxKeys
func (s *Service) List(ctx context.Context, bucket, prefix string, maxKeys int) ([]Object, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	if maxKeys <= 0 || maxKeys > 1000 {
		maxKeys = DefaultListLimit
	}

	input := &awss3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(int32(maxKeys)),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	resp, err := client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list s3://%s/%s: %w", bucket, prefix, err)
	}

	objects := make([]Object, 0, len(resp.Contents))
	for _, obj := range resp.Contents {
		if obj.Key == nil {
			continue
		}
		objects = append(objects, Object{
			Key:          *obj.Key,
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         strings.Trim(aws.ToString(obj.ETag), `"`),
		})
	}

	return objects, nil
}

// Get downloads an object with its content
func (s *Service) Get(ctx context.Context, bucket, key string) (*ObjectContent, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s body: %w", bucket, key, err)
	}

	return &ObjectContent{
		Object: Object{
			Key:          key,
			Size:         aws.ToInt64(resp.ContentLength),
			LastModified: aws.ToTime(resp.LastModified),
			ETag:         strings.Trim(aws.ToString(resp.ETag), `"`),
		},
		ContentType: aws.ToString(resp.ContentType),
		Body:        body,
	}, nil
}

// Put uploads content to a key
func (s *Service) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	input := &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", bucket, key, err)
	}

	s.logger.Debug().Str("bucket", bucket).Str("key", key).Int("bytes", len(body)).Msg("Object uploaded")
	return nil
}

// Copy duplicates an object within the same bucket
func (s *Service) Copy(ctx context.Context, bucket, sourceKey, destKey string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.CopyObject(ctx, &awss3.CopyObjectInput{
		Bucket:     aws.String(bucket),
		CopySource: aws.String(bucket + "/" + sourceKey),
		Key:        aws.String(destKey),
	})
	if err != nil {
		return fmt.Errorf("failed to copy s3://%s/%s to %s: %w", bucket, sourceKey, destKey, err)
	}

	return nil
}

// Move copies then deletes the source
func (s *Service) Move(ctx context.Context, bucket, sourceKey, destKey string) error {
	if err := s.Copy(ctx, bucket, sourceKey, destKey); err != nil {
		return err
	}
	return s.Delete(ctx, bucket, sourceKey)
}

// Delete removes an object
func (s *Service) Delete(ctx context.Context, bucket, key string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete s3://%s/%s: %w", bucket, key, err)
	}

	s.logger.Debug().Str("bucket", bucket).Str("key", key).Msg("Object deleted")
	return nil
}
