package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"redfin-etl/internal/domain/gateway/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3ObjectStore implements the storage.ObjectStore gateway on S3. Uploads go
// through the transfer manager, snapshot files run to hundreds of megabytes.
type S3ObjectStore struct {
	client   *s3.Client
	uploader *manager.Uploader
}

var _ storage.ObjectStore = (*S3ObjectStore)(nil)

func NewS3ObjectStore(client *s3.Client) *S3ObjectStore {
	return &S3ObjectStore{
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

// Upload stores the reader's content under bucket/key
func (store *S3ObjectStore) Upload(ctx context.Context, bucket string, key string, body io.Reader) error {
	_, err := store.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// UploadFile stores a local file under bucket/key and returns its size
func (store *S3ObjectStore) UploadFile(ctx context.Context, bucket string, key string, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := store.Upload(ctx, bucket, key, file); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Download opens the object for streaming. The caller closes the body.
func (store *S3ObjectStore) Download(ctx context.Context, bucket string, key string) (io.ReadCloser, error) {
	output, err := store.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to download s3://%s/%s: %w", bucket, key, err)
	}
	return output.Body, nil
}

// Head fetches the object metadata without the body
func (store *S3ObjectStore) Head(ctx context.Context, bucket string, key string) (*storage.ObjectInfo, error) {
	output, err := store.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to head s3://%s/%s: %w", bucket, key, err)
	}

	return &storage.ObjectInfo{
		Key:          key,
		SizeBytes:    aws.ToInt64(output.ContentLength),
		ETag:         aws.ToString(output.ETag),
		LastModified: aws.ToTime(output.LastModified),
	}, nil
}

// Delete removes the object. S3 treats deleting a missing key as success,
// which matches the gateway contract.
func (store *S3ObjectStore) Delete(ctx context.Context, bucket string, key string) error {
	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// CheckBucket verifies the bucket is reachable
func (store *S3ObjectStore) CheckBucket(ctx context.Context, bucket string) error {
	_, err := store.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s is not reachable: %w", bucket, err)
	}
	return nil
}

// isNotFound covers the S3 not-found family: NoSuchKey on GetObject and the
// bare NotFound that HeadObject returns
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
