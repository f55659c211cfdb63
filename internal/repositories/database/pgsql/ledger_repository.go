package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	"github.com/partbin/stockledger/internal/models"
	"github.com/partbin/stockledger/internal/utils/mapping"
	"github.com/partbin/stockledger/internal/utils/pagination"
	"github.com/partbin/stockledger/internal/utils/projection"
)

const ledgerColumns = `entry_id, kind, part_id, quantity, quantity_change, from_location_id, to_location_id, transfer_group_id, reason, metadata, occurred_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the append-only ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so the read
// helpers can run inside or outside a transaction.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// advisoryLockKey hashes a stock key into the bigint space used by
// pg_advisory_xact_lock. Writers for the same (location, part) key hash to
// the same lock and therefore serialize; a hash collision between different
// keys only costs extra serialization, never correctness.
func advisoryLockKey(key domain.StockKey) int64 {
	h := fnv.New64a()
	h.Write([]byte(key.String()))
	return int64(h.Sum64())
}

// lockKeys takes transaction-scoped advisory locks for the given stock keys
// in sorted order, so two writers touching the same pair of keys always
// acquire in the same order and cannot deadlock.
func lockKeys(ctx context.Context, tx pgx.Tx, keys []domain.StockKey) error {
	sorted := make([]domain.StockKey, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	for _, key := range sorted {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, advisoryLockKey(key)); err != nil {
			return apperrors.NewAppError(500, "failed to acquire write lock for key "+key.String(), err)
		}
	}
	return nil
}

// projectedStockTx derives the current stock of a key by loading its ledger
// slice through the given querier and folding it. Called under the key's
// advisory lock, the result cannot change until the transaction ends.
func projectedStockTx(ctx context.Context, q rowQuerier, key domain.StockKey) (decimal.Decimal, error) {
	entries, err := queryEntriesForKey(ctx, q, key.LocationID, key.PartID)
	if err != nil {
		return decimal.Zero, err
	}
	return projection.Project(key.LocationID, entries)
}

// AppendEntry durably commits one entry. The entry's key(s) are locked for
// the duration of the transaction so writes for a key are serialized, and
// OccurredAt is assigned here so commit order and fold order agree.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockKeys(ctx, tx, entry.Keys()); err != nil {
		return err
	}

	switch entry.Kind {
	case domain.Consumption:
		source := domain.StockKey{LocationID: entry.FromLocationID, PartID: entry.PartID}
		available, err := projectedStockTx(ctx, tx, source)
		if err != nil {
			return err
		}
		if available.LessThan(entry.Quantity) {
			return fmt.Errorf("%w: location %s part %s has %s, requested %s",
				apperrors.ErrInsufficientStock, source.LocationID, source.PartID, available, entry.Quantity)
		}
	case domain.Adjustment:
		target := domain.StockKey{LocationID: entry.ToLocationID, PartID: entry.PartID}
		available, err := projectedStockTx(ctx, tx, target)
		if err != nil {
			return err
		}
		if available.Add(entry.QuantityChange).IsNegative() {
			return fmt.Errorf("%w: adjustment of %s would drive location %s part %s below zero",
				apperrors.ErrNegativeStock, entry.QuantityChange, target.LocationID, target.PartID)
		}
	}

	entry.OccurredAt = time.Now().UTC()
	if err := insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AppendTransferPair commits the two legs of a transfer atomically. Both
// keys are locked in sorted order, the source balance is re-derived under
// the locks, and both rows go in the same transaction, so either both legs
// become durably visible or neither does.
func (r *PgxLedgerRepository) AppendTransferPair(ctx context.Context, debit, credit *domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrTransfer, err)
	}
	defer r.Rollback(ctx, tx)

	keys := append(debit.Keys(), credit.Keys()...)
	if err := lockKeys(ctx, tx, keys); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrTransfer, err)
	}

	source := domain.StockKey{LocationID: debit.FromLocationID, PartID: debit.PartID}
	available, err := projectedStockTx(ctx, tx, source)
	if err != nil {
		return err
	}
	if available.LessThan(debit.Quantity) {
		return fmt.Errorf("%w: location %s part %s has %s, requested %s",
			apperrors.ErrInsufficientStock, source.LocationID, source.PartID, available, debit.Quantity)
	}

	// Both legs carry the same commit timestamp so the pair is adjacent in
	// fold order and a point-in-time read at any instant sees both or neither.
	now := time.Now().UTC()
	debit.OccurredAt = now
	credit.OccurredAt = now

	for _, leg := range []*domain.LedgerEntry{debit, credit} {
		if err := insertEntryTx(ctx, tx, leg); err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrTransfer, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrTransfer, err)
	}
	return nil
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(*entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.Kind,
		m.PartID,
		m.Quantity,
		m.QuantityChange,
		textOrNil(m.FromLocationID),
		textOrNil(m.ToLocationID),
		textOrNil(m.TransferGroupID),
		textOrNil(m.Reason),
		textOrNil(m.Metadata),
		m.OccurredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a single committed entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find ledger entry "+entryID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to find ledger entry "+entryID, err)
		}
		return nil, apperrors.ErrNotFound
	}
	m, err := scanLedgerEntry(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledger entry "+entryID, err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// EntriesForKey retrieves the full ledger slice for one key in fold order.
func (r *PgxLedgerRepository) EntriesForKey(ctx context.Context, locationID, partID string) ([]domain.LedgerEntry, error) {
	return queryEntriesForKey(ctx, r.Pool, locationID, partID)
}

func queryEntriesForKey(ctx context.Context, q rowQuerier, locationID, partID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE part_id = $1 AND (from_location_id = $2 OR to_location_id = $2)
		ORDER BY occurred_at, entry_id;
	`
	rows, err := q.Query(ctx, query, partID, locationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for key "+locationID+":"+partID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row for key "+locationID+":"+partID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows for key "+locationID+":"+partID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// ListEntriesForKey retrieves a keyset-paginated audit slice of the key's
// ledger ordered by (occurred_at, entry_id). It returns the entries, a token
// for the next page, and an error.
func (r *PgxLedgerRepository) ListEntriesForKey(ctx context.Context, locationID, partID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE part_id = $1 AND (from_location_id = $2 OR to_location_id = $2)
	`
	orderByClause := `ORDER BY occurred_at, entry_id`

	args := []any{partID, locationID}
	var query string
	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison resumes strictly after the encoded entry.
		cursorClause := `AND (occurred_at, entry_id) > ($3, $4)`
		args = append(args, lastOccurredAt, lastEntryID)
		query = baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	} else {
		query = baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	}
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger page for key "+locationID+":"+partID, err)
	}
	defer rows.Close()

	page := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger page row for key "+locationID+":"+partID, err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger page rows for key "+locationID+":"+partID, err)
	}

	var token *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		t := pagination.EncodeToken(last.OccurredAt, last.EntryID)
		token = &t
	}

	return mapping.ToDomainLedgerEntrySlice(page), token, nil
}

// ListKeys returns every (location, part) key that has ledger history.
func (r *PgxLedgerRepository) ListKeys(ctx context.Context) ([]domain.StockKey, error) {
	query := `
		SELECT DISTINCT from_location_id AS location_id, part_id
		FROM ledger_entries WHERE from_location_id IS NOT NULL
		UNION
		SELECT DISTINCT to_location_id AS location_id, part_id
		FROM ledger_entries WHERE to_location_id IS NOT NULL
		ORDER BY location_id, part_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger keys", err)
	}
	defer rows.Close()

	keys := []domain.StockKey{}
	for rows.Next() {
		var k domain.StockKey
		if err := rows.Scan(&k.LocationID, &k.PartID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger key row", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger key rows", err)
	}
	return keys, nil
}

func scanLedgerEntry(rows pgx.Rows) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var fromLocation, toLocation, transferGroup, reason, metadata sql.NullString
	err := rows.Scan(
		&m.EntryID,
		&m.Kind,
		&m.PartID,
		&m.Quantity,
		&m.QuantityChange,
		&fromLocation,
		&toLocation,
		&transferGroup,
		&reason,
		&metadata,
		&m.OccurredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	m.FromLocationID = fromLocation.String
	m.ToLocationID = toLocation.String
	m.TransferGroupID = transferGroup.String
	m.Reason = reason.String
	m.Metadata = metadata.String
	return m, nil
}

// textOrNil stores empty strings as NULL so the partial indexes and the
// NULL-aware key listing behave.
func textOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
