package worker

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// SelectionJanitor periodically removes selections that already have a
// matching payment. Payment completion clears them transactionally, so in
// steady state this is a no-op; it exists to repair rows left behind by
// older non-transactional writes. Re-running is always safe; the delete
// is filter-based.
type SelectionJanitor struct {
	pool     *pgxpool.Pool
	log      zerolog.Logger
	interval time.Duration
}

// NewSelectionJanitor creates a new SelectionJanitor.
func NewSelectionJanitor(pool *pgxpool.Pool, log zerolog.Logger, interval time.Duration) *SelectionJanitor {
	return &SelectionJanitor{
		pool:     pool,
		log:      log.With().Str("component", "selection_janitor").Logger(),
		interval: interval,
	}
}

// Start runs the cleanup loop until the context is cancelled.
func (j *SelectionJanitor) Start(ctx context.Context) {
	j.log.Info().Dur("interval", j.interval).Msg("Selection janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info().Msg("Selection janitor stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *SelectionJanitor) sweep(ctx context.Context) {
	tag, err := j.pool.Exec(ctx,
		`DELETE FROM selections s
		 USING payments p
		 WHERE s.student_email = p.student_email AND s.class_id = p.class_id`)
	if err != nil {
		j.log.Error().Err(err).Msg("Sweep failed")
		return
	}

	if removed := tag.RowsAffected(); removed > 0 {
		j.log.Warn().Int64("removed", removed).Msg("Cleared stale paid-for selections")
	}
}
