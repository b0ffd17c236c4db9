package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/store"
)

// invalidateAround runs write between two deletions of the cached snapshot of
// email. The first deletion keeps a failed cache from hiding the change; the
// second drops any snapshot an authentication repopulated from the old row
// while write was in flight.
//
// Errors returned by write are passed through unchanged.
func invalidateAround(ctx context.Context, cache store.UserCache, email string, write func() error) error {
	if err := cache.Invalidate(ctx, email); err != nil {
		return fmt.Errorf("user cache invalidation failed: %w", err)
	}

	if err := write(); err != nil {
		return err
	}

	if err := cache.Invalidate(ctx, email); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "invalidateAround").Str("email", email).
			Msg("user changed but cached snapshot could not be dropped")
		return fmt.Errorf("user cache invalidation failed: %w", err)
	}

	return nil
}
