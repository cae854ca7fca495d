package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/infrastructure/logger"
)

// videoCacheTTL bounds how long a scored record serves analysis sessions
// before the API is consulted again.
const videoCacheTTL = 6 * time.Hour

// EnsureVideoCacheSchema creates the table for caching scored videos if not exists
func EnsureVideoCacheSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS video_cache (
        video_id TEXT PRIMARY KEY,
        data JSONB NOT NULL,
        expires_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create video_cache table: %w", err)
	}

	// Helpful index to purge or check expiry
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_video_cache_expires_at ON video_cache(expires_at)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_video_cache_expires_at")
	}

	// Functional index on published_at extracted from JSON for ordering
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_video_cache_published_at ON video_cache (( (data->>'published_at')::timestamptz ))`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_video_cache_published_at")
	}

	return nil
}

// VideoCacheRepository stores scored video records as JSONB so the record
// shape can evolve without migrations. A nil db degrades every call to a
// cache miss.
type VideoCacheRepository struct{ db *sql.DB }

func NewVideoCacheRepository(db *sql.DB) repository.IVideoCache {
	return &VideoCacheRepository{db: db}
}

// GetVideo returns a cached record, or nil on miss or expiry.
func (r *VideoCacheRepository) GetVideo(ctx context.Context, videoID string) (*model.VideoRecord, error) {
	if r.db == nil {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx, `SELECT data, expires_at FROM video_cache WHERE video_id=$1`, videoID)
	var raw []byte
	var expiresAt time.Time
	if err := row.Scan(&raw, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if time.Now().After(expiresAt) {
		return nil, nil
	}
	var v model.VideoRecord
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpsertVideos bulk upserts records with TTL from now.
func (r *VideoCacheRepository) UpsertVideos(ctx context.Context, videos []model.VideoRecord) error {
	if r.db == nil || len(videos) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	now := time.Now().UTC()
	exp := now.Add(videoCacheTTL)
	q := `INSERT INTO video_cache(video_id, data, expires_at, updated_at)
		  VALUES ($1,$2,$3,$4)
		  ON CONFLICT (video_id) DO UPDATE SET data=EXCLUDED.data, expires_at=EXCLUDED.expires_at, updated_at=EXCLUDED.updated_at`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := range videos {
		raw, mErr := json.Marshal(&videos[i])
		if mErr != nil {
			return mErr
		}
		if _, e := stmt.ExecContext(ctx, videos[i].ID, raw, exp, now); e != nil {
			return e
		}
	}
	return tx.Commit()
}

// ListVideos returns unexpired cached records ordered by published_at desc
// with pagination.
func (r *VideoCacheRepository) ListVideos(ctx context.Context, limit, offset int) ([]model.VideoRecord, int64, error) {
	if r.db == nil {
		return nil, 0, nil
	}
	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}
	countRow := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM video_cache WHERE expires_at > NOW()`)
	var total int64
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM video_cache WHERE expires_at > NOW() ORDER BY (data->>'published_at')::timestamptz DESC NULLS LAST LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.VideoRecord, 0, limit)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, 0, err
		}
		var v model.VideoRecord
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}
