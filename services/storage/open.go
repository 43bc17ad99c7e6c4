package storage

import (
	"context"
	"fmt"

	"pizzeria/config"
)

// Open builds the BlobStore selected by STORAGE_PROVIDER.
func Open(ctx context.Context, cfg config.Config) (BlobStore, error) {
	switch cfg.StorageProvider {
	case "", "firebase":
		return NewFirebaseBlobStore(ctx, cfg.CredentialsFile, cfg.FirebaseStorageBucket)
	case "cloudinary":
		return NewCloudinaryBlobStore(cfg.CloudinaryURL)
	case "memory":
		return NewMemoryBlobStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_PROVIDER %q", cfg.StorageProvider)
	}
}
