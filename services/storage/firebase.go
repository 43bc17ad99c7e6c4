package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// FirebaseBlobStore writes objects to the Firebase Storage bucket with public read access.
type FirebaseBlobStore struct {
	client     *storage.Client
	bucketName string
}

// NewFirebaseBlobStore connects with the service account file; an empty path uses application default credentials.
func NewFirebaseBlobStore(ctx context.Context, credentialsFile, bucketName string) (*FirebaseBlobStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &FirebaseBlobStore{client: client, bucketName: bucketName}, nil
}

func (s *FirebaseBlobStore) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	w := s.client.Bucket(s.bucketName).Object(path).NewWriter(ctx)
	w.ACL = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}
	w.ObjectAttrs.ContentType = contentType
	w.ObjectAttrs.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer for %s: %w", path, err)
	}
	return s.publicURL(path), nil
}

func (s *FirebaseBlobStore) Delete(ctx context.Context, path string) error {
	err := s.client.Bucket(s.bucketName).Object(path).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *FirebaseBlobStore) publicURL(path string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", s.bucketName, url.QueryEscape(path))
}

func (s *FirebaseBlobStore) Close() error {
	return s.client.Close()
}
