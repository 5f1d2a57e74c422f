package storage_fx

import (
	"context"
	"log"
	"os"

	"go.uber.org/fx"
	"trackdeck/internal/storage"
)

var Module = fx.Provide(provideObjectStore)

// provideObjectStore picks the blob backend: S3 by default, an ephemeral
// in-memory store when STORAGE_BACKEND=memory (local/demo runs).
func provideObjectStore() storage.ObjectStore {
	if os.Getenv("STORAGE_BACKEND") == "memory" {
		log.Println("Using in-memory object storage; uploads will not survive a restart")
		return storage.NewMemoryStore()
	}

	cfg := storage.S3Config{
		Bucket:       os.Getenv("S3_BUCKET"),
		Region:       os.Getenv("S3_REGION"),
		AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		SecretKey:    os.Getenv("S3_SECRET_KEY"),
		Endpoint:     os.Getenv("S3_ENDPOINT"),
		UsePathStyle: os.Getenv("S3_PATH_STYLE") == "true",
	}

	store, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}
	return store
}
