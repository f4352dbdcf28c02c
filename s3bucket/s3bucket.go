package s3bucket

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Bucket struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Bucket(client *s3.Client, region string, bucket string) *S3Bucket {
	return &S3Bucket{
		client: client,
		bucket: bucket,
		region: region,
	}
}

// Upload stores content under key with the given media type and
// returns the URL of the uploaded object.
func (bucket *S3Bucket) Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error) {
	_, err := bucket.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket.bucket,
		Key:         &key,
		Body:        bytes.NewReader(content),
		ContentType: &mediaType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	objectURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket.bucket, bucket.region, key)

	return objectURL, nil
}

// Exists checks whether an object is already stored under key.
func (bucket *S3Bucket) Exists(ctx context.Context, key string) (bool, error) {
	_, err := bucket.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket.bucket,
		Key:    &key,
	})
	if err != nil {
		var responseError *awshttp.ResponseError
		if errors.As(err, &responseError) && responseError.ResponseError.HTTPStatusCode() == 404 {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}

// Download fetches the object stored under key.
func (bucket *S3Bucket) Download(ctx context.Context, key string) ([]byte, error) {
	output, err := bucket.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	defer output.Body.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(output.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}
