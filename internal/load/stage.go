package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Supratim-02/hospitalstats/internal/db"
	"github.com/Supratim-02/hospitalstats/internal/model"
	"github.com/Supratim-02/hospitalstats/internal/normalize"
	"github.com/Supratim-02/hospitalstats/internal/recordread"
)

const readBatchSize = 1024

// StageResult holds metrics from the staging phase.
type StageResult struct {
	RowsRead     int64
	RowsStaged   int64
	RowsRejected int64
	Duration     time.Duration
}

// Stage streams rows from the source file, normalizes them, and COPY-loads
// them into the staging table via a channel-backed CopyFromSource.
// Malformed rows are rejected and counted; the load continues.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) (*StageResult, error) {
	start := time.Now()

	reader, err := recordread.Open(pf.FilePath)
	if err != nil {
		return nil, fmt.Errorf("stage open: %w", err)
	}
	defer reader.Close()

	ch := make(chan *model.StagingRow, readBatchSize)
	errCh := make(chan error, 1)

	var rowsRead, rowsRejected int64

	// Producer goroutine: read source rows → normalize → push to channel
	go func() {
		defer close(ch)
		buf := make([]model.PatientRow, readBatchSize)
		var rowNum int64

		for {
			n, readErr := reader.Read(buf)
			for i := 0; i < n; i++ {
				rowNum++
				rowsRead++

				staging, normErr := normalize.ToStagingRow(&buf[i], pf.LoadBatchID, pf.LoadFileID, rowNum)
				if normErr != nil {
					rowsRejected++
					log.Warn().Err(normErr).Int64("row", rowNum).Msg("row rejected")
					continue
				}

				select {
				case ch <- staging:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			var rowErr *recordread.RowError
			if errors.As(readErr, &rowErr) {
				rowNum++
				rowsRead++
				rowsRejected++
				log.Warn().Err(rowErr.Err).Int64("row", rowErr.Row).Msg("row rejected")
				continue
			}
			if readErr != nil {
				errCh <- fmt.Errorf("read source at row %d: %w", rowNum, readErr)
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into staging table
	source := db.NewChannelSource(ch)
	rowsStaged, err := pool.CopyFrom(ctx,
		pgx.Identifier{"ingest", "stage_patient_rows"},
		model.StagingColumns(),
		source,
	)

	// Wait for producer to finish
	prodErr := <-errCh
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_read", rowsRead).
		Int64("rows_staged", rowsStaged).
		Int64("rows_rejected", rowsRejected).
		Str("duration", dur.String()).
		Msg("staging complete")

	return &StageResult{
		RowsRead:     rowsRead,
		RowsStaged:   rowsStaged,
		RowsRejected: rowsRejected,
		Duration:     dur,
	}, nil
}

// UpdateStatus updates a load file's lifecycle status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, loadFileID int64, status string) error {
	_, err := pool.Exec(ctx,
		"UPDATE ingest.load_files SET status = $2, updated_at = now() WHERE load_file_id = $1",
		loadFileID, status,
	)
	return err
}
