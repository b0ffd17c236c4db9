package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/logger"
)

// blacklistRepository stores revoked tokens in "blacklist_tokens".
type blacklistRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewBlacklistRepository(db *DB, logger *logger.Logger) BlacklistRepository {
	logger.Debug().Msg("creating blacklist repository")
	return &blacklistRepository{
		db:     db,
		logger: logger,
	}
}

// Add blacklists token until expiresAt. Adding the same token twice is a no-op.
func (r *blacklistRepository) Add(ctx context.Context, token string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, addBlacklistToken, token, expiresAt.UTC()); err != nil {
		log.Err(err).Str("func", "*blacklistRepository.Add").Msg("failed to blacklist token")
		return r.db.wrapError(ErrExecutingStatement, err)
	}

	return nil
}

// Contains reports whether token was blacklisted. Errors are returned as is
// so authentication can fail closed.
func (r *blacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, containsBlacklistToken, token).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*blacklistRepository.Contains").Msg("failed to check blacklist")
		return false, r.db.wrapError(ErrExecutingQuery, err)
	}

	return exists, nil
}

// PruneExpired deletes entries whose token expired before now.
func (r *blacklistRepository) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, pruneBlacklistTokens, now.UTC())
	if err != nil {
		log.Err(err).Str("func", "*blacklistRepository.PruneExpired").Msg("failed to prune blacklist")
		return 0, r.db.wrapError(ErrExecutingStatement, err)
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, r.db.wrapError(ErrExecutingStatement, err)
	}

	return pruned, nil
}
