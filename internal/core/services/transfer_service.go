package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
	"github.com/partbin/stockledger/internal/middleware"
	"github.com/shopspring/decimal"
)

var ErrSameLocation = errors.New("source and destination locations must differ")

// transferService coordinates the two-sided ledger write of a transfer:
// a debit entry at the source and a credit entry at the destination sharing
// one transfer group, committed atomically.
type transferService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	stockSvc    portssvc.StockSvcFacade
	partSvc     portssvc.PartSvcFacade
	locationSvc portssvc.LocationSvcFacade
}

// NewTransferService creates a new transfer coordinator.
func NewTransferService(ledgerRepo portsrepo.LedgerRepositoryFacade, stockSvc portssvc.StockSvcFacade, partSvc portssvc.PartSvcFacade, locationSvc portssvc.LocationSvcFacade) portssvc.TransferSvcFacade {
	return &transferService{
		ledgerRepo:  ledgerRepo,
		stockSvc:    stockSvc,
		partSvc:     partSvc,
		locationSvc: locationSvc,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves quantity of a part from source to destination as one
// all-or-nothing operation. On any failure no ledger entries exist and no
// cache entries were touched.
func (s *transferService) Transfer(ctx context.Context, req dto.CreateTransferRequest, actorID string) (*domain.LedgerEntry, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: transfer quantity must be positive", apperrors.ErrValidation)
	}
	if req.SourceLocationID == req.DestinationLocationID {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSameLocation)
	}
	if err := checkCatalog(ctx, s.partSvc, s.locationSvc, req.PartID, req.SourceLocationID, req.DestinationLocationID); err != nil {
		return nil, nil, err
	}

	// Pre-commit stock check. This check-then-act is not globally
	// serialized; the repository re-derives the balance under the per-key
	// lock, and we re-validate after commit as well.
	available, err := s.stockSvc.ProjectStock(ctx, req.SourceLocationID, req.PartID)
	if err != nil {
		return nil, nil, err
	}
	if req.Quantity.GreaterThan(available) {
		logger.Warn("Transfer rejected, insufficient stock",
			slog.String("part_id", req.PartID), slog.String("source_location_id", req.SourceLocationID),
			slog.String("requested", req.Quantity.String()), slog.String("available", available.String()))
		return nil, nil, fmt.Errorf("%w: location %s part %s has %s, requested %s",
			apperrors.ErrInsufficientStock, req.SourceLocationID, req.PartID, available.String(), req.Quantity.String())
	}

	groupID := uuid.NewString()

	debit := newEntry(domain.Transfer, req.PartID, actorID, req.Metadata)
	debit.Quantity = req.Quantity
	debit.FromLocationID = req.SourceLocationID
	debit.TransferGroupID = groupID

	credit := newEntry(domain.Transfer, req.PartID, actorID, req.Metadata)
	credit.Quantity = req.Quantity
	credit.ToLocationID = req.DestinationLocationID
	credit.TransferGroupID = groupID

	if err := debit.Validate(); err != nil {
		return nil, nil, err
	}
	if err := credit.Validate(); err != nil {
		return nil, nil, err
	}

	if err := s.ledgerRepo.AppendTransferPair(ctx, debit, credit); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			return nil, nil, err
		}
		logger.Error("Failed to commit transfer pair", slog.String("error", err.Error()), slog.String("transfer_group_id", groupID))
		return nil, nil, err
	}

	var staleErr error
	for _, key := range []domain.StockKey{
		{LocationID: req.SourceLocationID, PartID: req.PartID},
		{LocationID: req.DestinationLocationID, PartID: req.PartID},
	} {
		if err := invalidateOrRefresh(ctx, s.stockSvc, key.LocationID, key.PartID); err != nil && staleErr == nil {
			staleErr = err
		}
	}

	// Post-commit re-validation: if a concurrent writer raced the pre-check
	// and the derived source stock is now negative, surface the integrity
	// fault instead of letting it persist silently. Any other read failure
	// here must not mask the committed pair as a failed transfer, since a
	// retry would move the stock twice.
	if _, err := s.stockSvc.ProjectStock(ctx, req.SourceLocationID, req.PartID); err != nil {
		if errors.Is(err, apperrors.ErrNegativeStock) {
			logger.Error("Transfer committed but source stock is negative, reconciliation required",
				slog.String("transfer_group_id", groupID), slog.String("source_location_id", req.SourceLocationID), slog.String("part_id", req.PartID))
			return debit, credit, err
		}
		logger.Warn("Post-commit re-validation read failed, transfer is committed",
			slog.String("error", err.Error()), slog.String("transfer_group_id", groupID))
	}

	if staleErr != nil {
		return debit, credit, staleErr
	}

	logger.Info("Transfer committed",
		slog.String("transfer_group_id", groupID), slog.String("part_id", req.PartID),
		slog.String("source_location_id", req.SourceLocationID), slog.String("destination_location_id", req.DestinationLocationID),
		slog.String("quantity", req.Quantity.String()))
	return debit, credit, nil
}
