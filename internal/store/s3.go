package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// NewS3Client builds an S3 client from the default AWS credential chain.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// S3Store keeps each collection as the object <prefix><collection>.json.
// S3 has no multi-object transaction, so batches are written one object at a time.
type S3Store struct {
	client S3API
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed store.
func NewS3Store(client S3API, bucket, prefix string, logger zerolog.Logger) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With().Str("store", "s3").Str("bucket", bucket).Logger(),
	}
}

func (s *S3Store) key(collection string) string {
	return s.prefix + collection + ".json"
}

// Bootstrap writes "[]" for every collection whose object does not exist yet.
func (s *S3Store) Bootstrap(ctx context.Context, collections ...string) error {
	for _, c := range collections {
		_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(c)),
		})
		if err == nil {
			continue
		}

		var notFound *types.NotFound
		if !errors.As(err, &notFound) {
			s.logger.Error().Err(err).Str("key", s.key(c)).Msg("failed to head object")
			return fmt.Errorf("failed to check collection %s: %w", c, err)
		}

		if err := s.Save(ctx, c, emptyCollection); err != nil {
			return err
		}
		s.logger.Info().Str("collection", c).Msg("collection initialised")
	}

	return nil
}

// Load downloads the collection object.
func (s *S3Store) Load(ctx context.Context, collection string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(collection)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return emptyCollection, nil
		}
		s.logger.Error().
			Err(err).
			Str("key", s.key(collection)).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, s.key(collection), err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object %s: %w", s.key(collection), err)
	}
	return data, nil
}

// Save uploads the collection object.
func (s *S3Store) Save(ctx context.Context, collection string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(collection)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", s.key(collection)).
			Msg("failed to put object to S3")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, s.key(collection), err)
	}
	return nil
}
