package load

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Supratim-02/hospitalstats/internal/normalize"
	"github.com/Supratim-02/hospitalstats/internal/recordread"
	embedsql "github.com/Supratim-02/hospitalstats/internal/sql"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// LoadFileID is the DB primary key for this file's registry row, inserted
	// or looked up via its sha256.
	LoadFileID int64
	// LoadBatchID is a freshly generated UUIDv4 that uniquely identifies this
	// load run, used to tag staged rows for later transform/cleanup.
	LoadBatchID uuid.UUID
	// AlreadyLoaded is true when the file's sha256 already exists in the DB
	// with status "transformed" and force mode is off, signaling the pipeline
	// can skip this file.
	AlreadyLoaded bool
}

// Preflight computes the file hash, validates that the file opens and its
// header/schema carries every required column, and registers the file.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	// Opening validates the CSV header or Parquet schema.
	reader, err := recordread.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	reader.Close()

	loadFileID, alreadyLoaded, err := registerLoadFile(ctx, pool, filePath, sha, stat.Size(), force)
	if err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("bytes", stat.Size()).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return &PreflightResult{
		FilePath:      filePath,
		FileSHA256:    sha,
		FileSize:      stat.Size(),
		LoadFileID:    loadFileID,
		LoadBatchID:   uuid.New(),
		AlreadyLoaded: alreadyLoaded,
	}, nil
}

func registerLoadFile(ctx context.Context, pool *pgxpool.Pool, filePath, sha string, fileSize int64, force bool) (int64, bool, error) {
	var loadFileID int64
	var status string
	err := pool.QueryRow(ctx, embedsql.RegisterLoadFile,
		filepath.Base(filePath), sha, fileSize,
	).Scan(&loadFileID, &status)

	if errors.Is(err, pgx.ErrNoRows) {
		// Already registered (ON CONFLICT DO NOTHING returned no rows).
		err = pool.QueryRow(ctx,
			"SELECT load_file_id, status FROM ingest.load_files WHERE source_file_sha256 = $1",
			sha,
		).Scan(&loadFileID, &status)
		if err != nil {
			return 0, false, fmt.Errorf("lookup existing load file: %w", err)
		}

		if !force && status == "transformed" {
			return loadFileID, true, nil
		}

		// Reset status for re-import.
		if err := UpdateStatus(ctx, pool, loadFileID, "pending"); err != nil {
			return 0, false, fmt.Errorf("reset load file status: %w", err)
		}
		return loadFileID, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("register load file: %w", err)
	}

	return loadFileID, false, nil
}
