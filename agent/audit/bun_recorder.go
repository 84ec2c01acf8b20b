package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Config struct {
	DSN         string        `envconfig:"DSN"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" split_words:"true" default:"5s"`
}

type invocationRow struct {
	bun.BaseModel `bun:"table:tool_invocations,alias:ti"`

	ID         string    `bun:"id,pk,type:uuid"`
	Tool       string    `bun:"tool,notnull"`
	Arguments  string    `bun:"arguments,type:jsonb,notnull"`
	Outcome    string    `bun:"outcome,notnull"`
	ErrorKind  string    `bun:"error_kind,nullzero"`
	Error      string    `bun:"error,nullzero"`
	DurationMS int64     `bun:"duration_ms,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

func newInvocationRow(entry Entry) invocationRow {
	return invocationRow{
		ID:         entry.ID.String(),
		Tool:       entry.Tool,
		Arguments:  string(entry.Arguments),
		Outcome:    string(entry.Outcome),
		ErrorKind:  entry.ErrorKind,
		Error:      entry.Error,
		DurationMS: entry.Duration.Milliseconds(),
		CreatedAt:  entry.CreatedAt,
	}
}

// BunRecorder persists entries in Postgres.
type BunRecorder struct {
	db *bun.DB
}

func NewBunRecorder(ctx context.Context, cfg Config) (*BunRecorder, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("audit dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithDialTimeout(cfg.DialTimeout),
	))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping audit database: %w", err)
	}
	return &BunRecorder{db: db}, nil
}

func NewBunRecorderWithDB(db *bun.DB) *BunRecorder {
	return &BunRecorder{db: db}
}

func (r *BunRecorder) Init(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*invocationRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create tool_invocations table: %w", err)
	}
	return nil
}

func (r *BunRecorder) Record(ctx context.Context, entry Entry) error {
	row := newInvocationRow(entry)
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert tool invocation: %w", err)
	}
	return nil
}

func (r *BunRecorder) Close() error {
	return r.db.Close()
}
