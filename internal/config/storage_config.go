package config

import "strings"

const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

type StorageConfig interface {
	GetStorageBackend() string
	GetStoragePath() string
	GetStorageSecret() string
	GetRedisURL() string
	GetRedisNamespace() string
	GetWipePolicy() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetStorageBackend is one of StorageMemory, StorageFile or StorageRedis.
func (Storage) GetStorageBackend() string {
	switch backend := strings.ToLower(GetEnv("STORAGE", StorageFile)); backend {
	case StorageMemory, StorageRedis:
		return backend
	default:
		return StorageFile
	}
}

func (Storage) GetStoragePath() string {
	return GetEnv("STORAGE_PATH", "./data/storage.json")
}

// GetStorageSecret returns the master secret used to encrypt the file store.
// Empty disables encryption.
func (Storage) GetStorageSecret() string {
	return GetEnv("STORAGE_SECRET", "")
}

func (Storage) GetRedisURL() string {
	return GetEnv("REDIS_URL", "redis://localhost:6379/0")
}

func (Storage) GetRedisNamespace() string {
	return GetEnv("REDIS_NAMESPACE", "member-client")
}

// GetWipePolicy is "any" (wipe storage on every profile fetch failure) or
// "auth" (only on authentication failures).
func (Storage) GetWipePolicy() string {
	return strings.ToLower(GetEnv("WIPE_POLICY", "any"))
}
