package config

import (
	"os"
	"sync"
)

type StorageConfig struct {
	Driver   string // "local" or "gcs"
	LocalDir string
	Bucket   string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", "local"),
			LocalDir: getEnv("STORAGE_LOCAL_DIR", "./uploads/resumes"),
			Bucket:   os.Getenv("GCS_BUCKET"),
		}
	})
	return storageConfig
}
