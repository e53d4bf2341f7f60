package slot

import (
	"context"
	"errors"
	"io"
	"log"

	"jewelryshop/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Read(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT value
FROM storage_slots
WHERE key = $1
`
	var value []byte
	err := r.pool.QueryRow(ctx, q, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("slot repo: read key=%s not found", key)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("slot repo: read key=%s error=%v", key, err)
		return nil, err
	}
	r.logger.Printf("slot repo: read key=%s bytes=%d", key, len(value))
	return value, nil
}

func (r *postgresRepo) Write(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO storage_slots (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, key, value); err != nil {
		r.logger.Printf("slot repo: write key=%s error=%v", key, err)
		return err
	}
	r.logger.Printf("slot repo: write key=%s bytes=%d", key, len(value))
	return nil
}
