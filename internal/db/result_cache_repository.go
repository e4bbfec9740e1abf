package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/arkdps/internal/calculator"
)

// ResultCacheRepository реализует calculator.ResultCache поверх таблицы dps_results.
type ResultCacheRepository struct {
	pool *pgxpool.Pool
	ttl  time.Duration
	now  func() time.Time
}

// Compile-time check.
var _ calculator.ResultCache = (*ResultCacheRepository)(nil)

// NewResultCacheRepository создаёт repository. Записи старше ttl считаются промахом.
func NewResultCacheRepository(pool *pgxpool.Pool, ttl time.Duration) *ResultCacheRepository {
	return &ResultCacheRepository{pool: pool, ttl: ttl, now: time.Now}
}

// Get возвращает payload по fingerprint.
// Отсутствующая или просроченная запись - (nil, false, nil).
func (r *ResultCacheRepository) Get(ctx context.Context, fingerprint string) ([]byte, bool, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload FROM dps_results
		 WHERE fingerprint = $1 AND created_at > $2`,
		fingerprint, r.now().Add(-r.ttl),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query dps result %s: %w", fingerprint, err)
	}
	return payload, true, nil
}

// Put сохраняет payload. Повторная запись под тем же fingerprint
// перезаписывает payload и сбрасывает время создания.
func (r *ResultCacheRepository) Put(ctx context.Context, fingerprint, kind string, payload []byte) error {
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO dps_results (fingerprint, kind, payload, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (fingerprint) DO UPDATE
		 SET kind = EXCLUDED.kind, payload = EXCLUDED.payload, created_at = EXCLUDED.created_at`,
		fingerprint, kind, string(payload), r.now()); err != nil {
		return fmt.Errorf("upsert dps result %s: %w", fingerprint, err)
	}
	return nil
}

// DeleteExpired удаляет просроченные записи и возвращает их количество.
func (r *ResultCacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM dps_results WHERE created_at <= $1`, r.now().Add(-r.ttl))
	if err != nil {
		return 0, fmt.Errorf("delete expired dps results: %w", err)
	}
	return tag.RowsAffected(), nil
}
