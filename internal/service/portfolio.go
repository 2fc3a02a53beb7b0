package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"sync"

	"folio/internal/ingest"
	"folio/internal/models"
	"folio/internal/portfolio"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PortfolioService runs the analytics pipeline for uploads and keeps the
// latest successful result per user.
type PortfolioService struct {
	cache  *ResultCache
	prices portfolio.PriceOracle
	mode   PricingMode
	log    *logrus.Logger

	locks [lockStripes]sync.Mutex
}

// lockStripes bounds the lock table; users hashing to the same stripe
// simply serialize with each other.
const lockStripes = 64

func NewPortfolioService(cache *ResultCache, prices portfolio.PriceOracle, mode PricingMode, log *logrus.Logger) *PortfolioService {
	return &PortfolioService{cache: cache, prices: prices, mode: mode, log: log}
}

func (s *PortfolioService) userLock(userID string) *sync.Mutex {
	return &s.locks[lockStripe(userID)]
}

func lockStripe(userID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return h.Sum32() % lockStripes
}

// Upload analyzes rows and replaces the user's stored result. When
// validation fails the stored result is left untouched.
func (s *PortfolioService) Upload(ctx context.Context, userID string, rows []portfolio.RawRow) (*models.ParsedResult, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	log := s.log.WithFields(logrus.Fields{"user_id": userID, "run_id": uuid.NewString(), "rows": len(rows)})

	res, err := portfolio.Analyze(rows, oracleForRun(s.mode, s.prices))
	if err != nil {
		var verr *portfolio.ValidationError
		if errors.As(err, &verr) {
			log.Warnf("upload rejected: %d invalid rows", len(verr.Diagnostics))
		}
		return nil, err
	}
	if err := s.cache.Save(ctx, userID, res); err != nil {
		log.Errorf("persist result failed: %v", err)
		return nil, err
	}
	log.WithFields(logrus.Fields{"trades": len(res.Trades), "holdings": len(res.Holdings)}).Info("portfolio computed")
	return res, nil
}

// UploadCSV reads a CSV trade file and runs Upload on its rows.
func (s *PortfolioService) UploadCSV(ctx context.Context, userID string, r io.Reader) (*models.ParsedResult, error) {
	rows, err := ingest.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return s.Upload(ctx, userID, rows)
}

// Current returns the stored result, or nil if the user has none. It holds
// the user's lock because loading may delete an undecodable entry.
func (s *PortfolioService) Current(ctx context.Context, userID string) (*models.ParsedResult, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()
	return s.cache.Load(ctx, userID)
}

func (s *PortfolioService) Reset(ctx context.Context, userID string) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()
	return s.cache.Clear(ctx, userID)
}
