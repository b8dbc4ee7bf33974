package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"cybele-backend/internal/apperr"
)

// S3 stores blobs as objects under "<folder>/<name>" keys in a bucket and
// returns public object URLs as references. It keeps the same validation and
// re-encode contract as the disk store for deployments without a persistent
// local disk.
type S3 struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3 creates an S3-backed store. accessKey/secretKey are optional; when
// empty the default AWS credential chain is used. endpoint is optional and
// supports S3-compatible providers.
func NewS3(ctx context.Context, region, bucket, accessKey, secretKey, endpoint string) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	if endpoint != "" {
		baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(endpoint, "/"), bucket)
	}

	return &S3{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Save implements Store.
func (s *S3) Save(ctx context.Context, content []byte, originalFilename, folder string) (string, error) {
	ext, err := validateUpload(content, originalFilename)
	if err != nil {
		return "", err
	}

	key := folder + "/" + newObjectName(ext)
	body := content
	contentType := contentTypeByExt(ext)

	if reencodable(ext) {
		if out, err := reencodeBytes(content); err != nil {
			// Non-fatal: upload the original bytes instead.
			log.Warn().Err(err).Str("key", key).Msg("Image re-encode failed, uploading original")
		} else {
			body = out
			contentType = "image/jpeg"
		}
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to put %s: %v", apperr.ErrStorage, key, err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete implements Store.
func (s *S3) Delete(ctx context.Context, ref string) bool {
	key := strings.TrimPrefix(ref, s.baseURL+"/")
	if key == ref {
		// Reference was not produced by this store.
		return false
	}

	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return false
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to delete blob")
		return false
	}
	return true
}
