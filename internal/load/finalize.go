package load

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Finalize records the load's row counts, marks the file transformed, and
// refreshes planner statistics on the serving table.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, loadFileID int64, stage *StageResult, transform *TransformResult) (time.Duration, error) {
	start := time.Now()

	_, err := pool.Exec(ctx,
		`UPDATE ingest.load_files
		 SET status = 'transformed',
		     rows_read = $2,
		     rows_staged = $3,
		     rows_rejected = $4,
		     rows_inserted = $5,
		     updated_at = now()
		 WHERE load_file_id = $1`,
		loadFileID, stage.RowsRead, stage.RowsStaged, stage.RowsRejected, transform.RowsInserted,
	)
	if err != nil {
		return 0, fmt.Errorf("record load counts: %w", err)
	}

	if _, err := pool.Exec(ctx, "ANALYZE care.patients"); err != nil {
		return 0, fmt.Errorf("analyze patients: %w", err)
	}
	log.Info().Msg("ANALYZE complete")

	return time.Since(start), nil
}
