package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	dommedia "example.com/softuni-fest/internal/domain/media"
)

const gcsURLPrefix = "https://storage.googleapis.com/"

// CloudStorage keeps product images in a public Google Cloud Storage bucket.
type CloudStorage struct {
	client     *storage.Client
	bucketName string
	folder     string
}

func NewCloudStorage(ctx context.Context, bucketName, credentialsPath string) (*CloudStorage, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &CloudStorage{
		client:     client,
		bucketName: bucketName,
		folder:     "products",
	}, nil
}

func (c *CloudStorage) SaveFile(ctx context.Context, img *dommedia.Image) (string, error) {
	ext, err := img.Extension()
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s/%s%s", c.folder, uuid.NewString(), ext)
	w := c.client.Bucket(c.bucketName).Object(name).NewWriter(ctx)
	w.ContentType = img.ContentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, img.Body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy image to bucket: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize image upload: %w", err)
	}

	return gcsURLPrefix + c.bucketName + "/" + name, nil
}

func (c *CloudStorage) DeleteFile(ctx context.Context, fileURL string) error {
	name, err := objectName(c.bucketName, fileURL)
	if err != nil {
		return err
	}
	if err := c.client.Bucket(c.bucketName).Object(name).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return dommedia.ErrFileNotFound
		}
		return fmt.Errorf("delete image object: %w", err)
	}
	return nil
}

func (c *CloudStorage) Close() error {
	return c.client.Close()
}

// objectName extracts the object path from a public bucket URL.
func objectName(bucket, fileURL string) (string, error) {
	rest, ok := strings.CutPrefix(fileURL, gcsURLPrefix)
	if !ok {
		return "", fmt.Errorf("%w: not a storage url %q", dommedia.ErrFileNotFound, fileURL)
	}
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] != bucket || parts[1] == "" {
		return "", fmt.Errorf("%w: bucket mismatch in %q", dommedia.ErrFileNotFound, fileURL)
	}
	return parts[1], nil
}
