package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/metrics"
	"github.com/MKhiriev/go-photo-share/internal/store"
)

// DefaultPruneInterval is used when no interval is configured.
const DefaultPruneInterval = time.Hour

// BlacklistPruner periodically deletes revoked tokens whose expiry has
// passed. Pruning never changes the answer of Contains; it only bounds the
// size of the table.
type BlacklistPruner struct {
	blacklist store.BlacklistRepository
	interval  time.Duration
	now       func() time.Time

	logger *logger.Logger
}

func NewBlacklistPruner(blacklist store.BlacklistRepository, interval time.Duration, logger *logger.Logger) *BlacklistPruner {
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	return &BlacklistPruner{
		blacklist: blacklist,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
	}
}

// Run prunes once at start and then on every tick. Failures are logged and
// retried on the next tick.
func (p *BlacklistPruner) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.prune(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *BlacklistPruner) prune(ctx context.Context) {
	n, err := p.blacklist.PruneExpired(ctx, p.now())
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Err(err).Str("func", "*BlacklistPruner.prune").Msg("pruning expired tokens failed")
		}
		return
	}

	metrics.BlacklistPruned.Add(float64(n))
	if n > 0 {
		p.logger.Debug().Int64("pruned", n).Msg("expired tokens pruned")
	}
}
