package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/middleware"
	"github.com/partbin/stockledger/internal/utils/projection"
	"github.com/shopspring/decimal"
)

// stockService owns the stock cache. All reads of current stock and every
// cache mutation (refresh, invalidate, rebuild) flow through here; write
// services call Invalidate after committing ledger entries.
type stockService struct {
	ledgerRepo portsrepo.LedgerReader
	cacheRepo  portsrepo.StockCacheRepository
}

// NewStockService creates a new stock service.
func NewStockService(ledgerRepo portsrepo.LedgerReader, cacheRepo portsrepo.StockCacheRepository) portssvc.StockSvcFacade {
	return &stockService{
		ledgerRepo: ledgerRepo,
		cacheRepo:  cacheRepo,
	}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

// GetStock serves the key's quantity, preferring the cache. A stale marker
// forces a refresh before returning so the caller never observes a value
// older than the latest committed write. A missing cache row is only
// legitimate for keys with no ledger history; anything else is a detected
// inconsistency that is repaired by refreshing, never served as a silent zero.
func (s *stockService) GetStock(ctx context.Context, locationID, partID string) (*domain.StockLevel, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	level, err := s.cacheRepo.Get(ctx, locationID, partID)
	switch {
	case err == nil:
		if !level.Stale {
			return level, true, nil
		}
		logger.Debug("Cache entry stale, refreshing", slog.String("location_id", locationID), slog.String("part_id", partID))
		refreshed, refreshErr := s.Refresh(ctx, locationID, partID)
		if refreshErr != nil {
			return nil, false, refreshErr
		}
		return refreshed, false, nil

	case errors.Is(err, apperrors.ErrNotFound):
		entries, lErr := s.ledgerRepo.EntriesForKey(ctx, locationID, partID)
		if lErr != nil {
			return nil, false, fmt.Errorf("failed to read ledger for %s:%s: %w", locationID, partID, lErr)
		}
		if len(entries) == 0 {
			// No history: zero stock is the true answer, nothing to cache.
			return &domain.StockLevel{
				LocationID: locationID,
				PartID:     partID,
				Quantity:   decimal.Zero,
				ComputedAt: time.Now().UTC(),
			}, false, nil
		}
		logger.Warn("Cache row missing for key with ledger history, repairing",
			slog.String("location_id", locationID), slog.String("part_id", partID))
		refreshed, refreshErr := s.refreshFromEntries(ctx, locationID, partID, entries)
		if refreshErr != nil {
			// The detected inconsistency could not be repaired; surface it
			// as such rather than as a plain refresh failure.
			return nil, false, fmt.Errorf("%w: %s:%s: %w", apperrors.ErrCacheMiss, locationID, partID, refreshErr)
		}
		return refreshed, false, nil

	default:
		return nil, false, fmt.Errorf("failed to read stock cache for %s:%s: %w", locationID, partID, err)
	}
}

// GetStockBatch serves a batch of keys, one GetStock per key.
func (s *stockService) GetStockBatch(ctx context.Context, keys []domain.StockKey) ([]domain.StockLevel, []bool, error) {
	levels := make([]domain.StockLevel, 0, len(keys))
	fromCache := make([]bool, 0, len(keys))
	for _, key := range keys {
		level, cached, err := s.GetStock(ctx, key.LocationID, key.PartID)
		if err != nil {
			return nil, nil, fmt.Errorf("batch read failed at key %s: %w", key.String(), err)
		}
		levels = append(levels, *level)
		fromCache = append(fromCache, cached)
	}
	return levels, fromCache, nil
}

// ProjectStock folds the key's full ledger slice, bypassing the cache.
func (s *stockService) ProjectStock(ctx context.Context, locationID, partID string) (decimal.Decimal, error) {
	entries, err := s.ledgerRepo.EntriesForKey(ctx, locationID, partID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read ledger for %s:%s: %w", locationID, partID, err)
	}
	return projection.Project(locationID, entries)
}

// Refresh recomputes the key's quantity from the ledger and overwrites the
// cache entry, bumping its version.
func (s *stockService) Refresh(ctx context.Context, locationID, partID string) (*domain.StockLevel, error) {
	entries, err := s.ledgerRepo.EntriesForKey(ctx, locationID, partID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for %s:%s: %w", locationID, partID, err)
	}
	return s.refreshFromEntries(ctx, locationID, partID, entries)
}

func (s *stockService) refreshFromEntries(ctx context.Context, locationID, partID string, entries []domain.LedgerEntry) (*domain.StockLevel, error) {
	quantity, err := projection.Project(locationID, entries)
	if err != nil {
		// ErrNegativeStock propagates untouched: integrity faults are
		// surfaced, not cached over.
		return nil, err
	}

	var version int64 = 1
	if existing, getErr := s.cacheRepo.Get(ctx, locationID, partID); getErr == nil {
		version = existing.Version + 1
	} else if !errors.Is(getErr, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read stock cache for %s:%s: %w", locationID, partID, getErr)
	}

	level := domain.StockLevel{
		LocationID: locationID,
		PartID:     partID,
		Quantity:   quantity,
		Version:    version,
		ComputedAt: time.Now().UTC(),
		Stale:      false,
	}
	if err := s.cacheRepo.Put(ctx, level); err != nil {
		return nil, fmt.Errorf("failed to write stock cache for %s:%s: %w", locationID, partID, err)
	}
	return &level, nil
}

// Invalidate marks the key's cache entry stale so the next read refreshes
// instead of serving a momentarily wrong value.
func (s *stockService) Invalidate(ctx context.Context, locationID, partID string) error {
	if err := s.cacheRepo.Invalidate(ctx, locationID, partID); err != nil {
		return fmt.Errorf("failed to invalidate stock cache for %s:%s: %w", locationID, partID, err)
	}
	return nil
}

// RebuildAll drops the whole projection and refolds every key with ledger
// history. Used by operators after detected drift or bulk data repair.
func (s *stockService) RebuildAll(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.cacheRepo.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to drop stock cache: %w", err)
	}

	keys, err := s.ledgerRepo.ListKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list ledger keys: %w", err)
	}

	for i, key := range keys {
		if _, err := s.Refresh(ctx, key.LocationID, key.PartID); err != nil {
			return i, fmt.Errorf("rebuild failed at key %s: %w", key.String(), err)
		}
	}

	logger.Info("Stock cache rebuilt", slog.Int("keys", len(keys)))
	return len(keys), nil
}
