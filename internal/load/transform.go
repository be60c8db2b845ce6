package load

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/Supratim-02/hospitalstats/internal/sql"
)

// TransformResult holds metrics from the staging → serving move.
type TransformResult struct {
	RowsInserted int64
	Duration     time.Duration
}

// Transform moves a staged batch into care.patients. Duplicate patient ids
// resolve to the first occurrence in file order.
func Transform(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID) (*TransformResult, error) {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.TransformStageToPatients, batchID)
	if err != nil {
		return nil, fmt.Errorf("transform stage to patients: %w", err)
	}

	dur := time.Since(start)
	rows := tag.RowsAffected()

	log.Info().
		Int64("rows_inserted", rows).
		Str("duration", dur.String()).
		Msg("transform complete")

	return &TransformResult{
		RowsInserted: rows,
		Duration:     dur,
	}, nil
}
