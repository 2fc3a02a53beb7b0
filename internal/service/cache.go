package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"folio/internal/database"
	"folio/internal/models"

	"github.com/sirupsen/logrus"
)

// CacheKey is the key the computed bundle is stored under.
const CacheKey = "portfolioData"

// KVStore is the persistence collaborator; database.Repo and database.MemoryKV implement it.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// PersistenceDecodeError reports a stored bundle that could not be decoded.
type PersistenceDecodeError struct {
	Key string
	Err error
}

func (e *PersistenceDecodeError) Error() string {
	return fmt.Sprintf("decode cached portfolio %q: %v", e.Key, e.Err)
}

func (e *PersistenceDecodeError) Unwrap() error { return e.Err }

// ResultCache stores one ParsedResult per user.
type ResultCache struct {
	kv  KVStore
	log *logrus.Logger
}

func NewResultCache(kv KVStore, log *logrus.Logger) *ResultCache {
	return &ResultCache{kv: kv, log: log}
}

func cacheKey(userID string) string {
	if userID == "" {
		return CacheKey
	}
	return CacheKey + ":" + userID
}

// Load returns the stored bundle verbatim, or nil when none is stored.
// Undecodable data is discarded and reported as absent.
func (c *ResultCache) Load(ctx context.Context, userID string) (*models.ParsedResult, error) {
	key := cacheKey(userID)
	b, err := c.kv.Get(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cached portfolio: %w", err)
	}
	var res models.ParsedResult
	if err := json.Unmarshal(b, &res); err != nil {
		c.log.Warnf("failed to load saved portfolio data: %v", &PersistenceDecodeError{Key: key, Err: err})
		if err := c.kv.Delete(ctx, key); err != nil {
			c.log.Warnf("clear undecodable cache entry %s: %v", key, err)
		}
		return nil, nil
	}
	return &res, nil
}

func (c *ResultCache) Save(ctx context.Context, userID string, res *models.ParsedResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	if err := c.kv.Put(ctx, cacheKey(userID), b); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	return nil
}

func (c *ResultCache) Clear(ctx context.Context, userID string) error {
	if err := c.kv.Delete(ctx, cacheKey(userID)); err != nil {
		return fmt.Errorf("clear portfolio: %w", err)
	}
	return nil
}
