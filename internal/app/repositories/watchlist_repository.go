package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studyportal/internal/db"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/dberrors"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

// mergeEntrySQL inserts one saved resource for a user. Resources that do not exist
// select no row, and an existing entry keeps its saved_at.
const mergeEntrySQL = `
	INSERT INTO watchlist (user_id, resource_id)
	SELECT $1, id FROM resources WHERE id = $2
	ON CONFLICT (user_id, resource_id) DO NOTHING`

// WatchlistRepository persists signed-in users' saved resources.
type WatchlistRepository struct {
	pg *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewWatchlistRepository creates a new WatchlistRepository
func NewWatchlistRepository(pg *db.PostgresDB) *WatchlistRepository {
	return &WatchlistRepository{
		pg: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add saves a resource. Saving it again is a no-op that keeps the first saved_at.
func (r *WatchlistRepository) Add(ctx context.Context, userID, resourceID string) error {
	query, args, err := r.sb.Insert("watchlist").
		Columns("user_id", "resource_id").
		Values(userID, resourceID).
		Suffix("ON CONFLICT (user_id, resource_id) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add watchlist SQL")
		return fmt.Errorf("failed to build add watchlist query: %w", err)
	}

	if _, err := r.pg.Pool.Exec(ctx, query, args...); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrStudyResourceNotFound
		}
		logger.Error().Err(err).Str("userID", userID).Str("resourceID", resourceID).Msg("Error executing add watchlist query")
		return fmt.Errorf("error adding watchlist entry: %w", err)
	}
	return nil
}

// Remove deletes a saved resource. Removing an absent entry is not an error.
func (r *WatchlistRepository) Remove(ctx context.Context, userID, resourceID string) error {
	query, args, err := r.sb.Delete("watchlist").
		Where(squirrel.Eq{"user_id": userID, "resource_id": resourceID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building remove watchlist SQL")
		return fmt.Errorf("failed to build remove watchlist query: %w", err)
	}

	if _, err := r.pg.Pool.Exec(ctx, query, args...); err != nil {
		logger.Error().Err(err).Str("userID", userID).Str("resourceID", resourceID).Msg("Error executing remove watchlist query")
		return fmt.Errorf("error removing watchlist entry: %w", err)
	}
	return nil
}

// IDs lists the user's saved resource ids, most recently saved first.
func (r *WatchlistRepository) IDs(ctx context.Context, userID string) ([]string, error) {
	query, args, err := r.sb.Select("resource_id").
		From("watchlist").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("saved_at DESC", "resource_id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list watchlist SQL")
		return nil, fmt.Errorf("failed to build list watchlist query: %w", err)
	}

	rows, err := r.pg.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error executing list watchlist query")
		return nil, fmt.Errorf("error listing watchlist: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error scanning watchlist rows")
		return nil, fmt.Errorf("error scanning watchlist rows: %w", err)
	}
	return ids, nil
}

// Merge upserts every given id into the user's watchlist as one batch inside a
// transaction and returns how many entries were new. Unknown ids are skipped.
func (r *WatchlistRepository) Merge(ctx context.Context, userID string, resourceIDs []string) (int, error) {
	if len(resourceIDs) == 0 {
		return 0, nil
	}

	added := 0
	err := r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, id := range resourceIDs {
			batch.Queue(mergeEntrySQL, userID, id)
		}

		results := tx.SendBatch(ctx, batch)
		for range resourceIDs {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return err
			}
			added += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Int("count", len(resourceIDs)).Msg("Error merging watchlist")
		return 0, fmt.Errorf("error merging watchlist: %w", err)
	}
	return added, nil
}
