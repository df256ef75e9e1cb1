package dedup

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
)

const (
	SelectNotified = `SELECT notified FROM notified_orders WHERE order_id=$1;`
	UpsertNotified = `INSERT INTO notified_orders (order_id, notified, notified_at, cleared_at)
						VALUES ($1, TRUE, $2, NULL)
						ON CONFLICT (order_id) DO UPDATE
						SET notified = TRUE, notified_at = EXCLUDED.notified_at, cleared_at = NULL;`
	UpsertCleared = `INSERT INTO notified_orders (order_id, notified, cleared_at)
						VALUES ($1, FALSE, $2)
						ON CONFLICT (order_id) DO UPDATE
						SET notified = FALSE, cleared_at = EXCLUDED.cleared_at;`
	SelectClearedSince = `SELECT EXISTS(SELECT 1 FROM notified_orders WHERE order_id=$1 AND NOT notified AND cleared_at >= $2);`
	DeleteCleared      = `DELETE FROM notified_orders WHERE NOT notified AND cleared_at < $1;`
)

// PostgresSet - множество уведомлённых заказов в PostgreSQL, переживает перезапуск процесса
type PostgresSet struct {
	Pool *pgxpool.Pool
	DSN  string
	now  func() time.Time

	// неудачные попытки уведомления хранятся только в памяти процесса
	mu        sync.Mutex
	attempted map[models.OrderID]struct{}
}

//go:embed migrations/*.sql
var embedMigrations embed.FS

// NewPostgresSet подключается к базе (с повторами на старте) и применяет миграции
func NewPostgresSet(ctx context.Context, dsn string) (*PostgresSet, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			logger.Warn("database is not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migration(dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error migrate database: %w", err)
	}

	return &PostgresSet{
		Pool:      pool,
		DSN:       dsn,
		now:       time.Now,
		attempted: make(map[models.OrderID]struct{}),
	}, nil
}

func Migration(DatabaseDSN string) error {

	db, err := sql.Open("pgx", DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open db error: %w ", err)
	}
	defer db.Close()
	// используется для внутренней файловой системы (загруженные ресурсы)
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect error: %w ", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose run migrations error:  %w ", err)
	}
	return nil
}

func (s *PostgresSet) isAttempted(id models.OrderID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.attempted[id]
	return ok
}

func (s *PostgresSet) forgetAttempt(id models.OrderID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempted, id)
}

func (s *PostgresSet) IsNotified(ctx context.Context, id models.OrderID) (bool, error) {
	if s.isAttempted(id) {
		return true, nil
	}
	var notified bool
	err := s.Pool.QueryRow(ctx, SelectNotified, id.String()).Scan(&notified)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check notified order: %w", err)
	}
	return notified, nil
}

func (s *PostgresSet) MarkNotified(ctx context.Context, id models.OrderID) error {
	if _, err := s.Pool.Exec(ctx, UpsertNotified, id.String(), s.now()); err != nil {
		return fmt.Errorf("failed to mark order notified: %w", err)
	}
	s.forgetAttempt(id)
	return nil
}

// MarkAttempted не пишет в базу: после перезапуска заказ будет отправлен снова
func (s *PostgresSet) MarkAttempted(_ context.Context, id models.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempted[id] = struct{}{}
	return nil
}

func (s *PostgresSet) Clear(ctx context.Context, id models.OrderID) error {
	s.forgetAttempt(id)
	if _, err := s.Pool.Exec(ctx, UpsertCleared, id.String(), s.now()); err != nil {
		return fmt.Errorf("failed to clear notified order: %w", err)
	}
	return nil
}

func (s *PostgresSet) ClearedSince(ctx context.Context, id models.OrderID, since time.Time) (bool, error) {
	var cleared bool
	if err := s.Pool.QueryRow(ctx, SelectClearedSince, id.String(), since).Scan(&cleared); err != nil {
		return false, fmt.Errorf("failed to check cleared order: %w", err)
	}
	return cleared, nil
}

func (s *PostgresSet) Prune(ctx context.Context, before time.Time) error {
	if _, err := s.Pool.Exec(ctx, DeleteCleared, before); err != nil {
		return fmt.Errorf("failed to prune cleared orders: %w", err)
	}
	return nil
}

func (s *PostgresSet) Close() error {
	s.Pool.Close()
	return nil
}
