package database

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a cache key holds no value.
var ErrNotFound = errors.New("cache entry not found")

type CacheEntry struct {
	Key       string    `db:"cache_key" json:"key"`
	Payload   string    `db:"payload" json:"payload"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
