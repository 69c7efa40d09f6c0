// Package pgstore serves postgres:// storage targets. All collections of a
// database share the video_records table, partitioned by the collection column;
// the target's database name replaces the one in the endpoint DSN.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
	"github.com/lueurxax/video-index-bot/migrations"
)

// Schemes lists the endpoint schemes served by this backend.
var Schemes = []string{"postgres", "postgresql"}

const (
	migrationLockID     = int64(73514)
	uniqueViolationCode = "23505"
)

const (
	sqlFindByStableID = `SELECT external_id, stable_id, display_name, mime_type, size_bytes, channel_id
FROM video_records WHERE collection = $1 AND stable_id = $2 LIMIT 1`

	sqlInsert = `INSERT INTO video_records (id, collection, external_id, stable_id, display_name, mime_type, size_bytes, channel_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	sqlFindAll = `SELECT external_id, stable_id, display_name, mime_type, size_bytes, channel_id
FROM video_records WHERE collection = $1 ORDER BY created_at, id`

	sqlCount = `SELECT count(*) FROM video_records WHERE collection = $1`
)

// Opener opens one connection per Open call and migrates each database once per process.
type Opener struct {
	logger *zerolog.Logger

	mu       sync.Mutex
	migrated map[string]bool
}

var _ ports.GatewayOpener = (*Opener)(nil)

// NewOpener creates a Postgres opener.
func NewOpener(logger *zerolog.Logger) *Opener {
	return &Opener{
		logger:   logger,
		migrated: make(map[string]bool),
	}
}

// ConnConfig parses the endpoint and points it at the target database.
func ConnConfig(target domain.StorageTarget) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(target.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	cfg.Database = target.Database

	return cfg, nil
}

// Open connects and makes sure the schema exists.
func (o *Opener) Open(ctx context.Context, target domain.StorageTarget) (ports.StorageGateway, error) {
	cfg, err := ConnConfig(target)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", target.RedactedEndpoint(), err)
	}

	if err := o.ensureSchema(ctx, conn, cfg); err != nil {
		_ = conn.Close(ctx) //nolint:errcheck // already returning the migration error

		return nil, err
	}

	return &Gateway{conn: conn, collection: target.Collection}, nil
}

func (o *Opener) ensureSchema(ctx context.Context, conn *pgx.Conn, cfg *pgx.ConnConfig) error {
	key := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.migrated[key] {
		return nil
	}

	if err := migrate(ctx, conn, cfg, o.logger); err != nil {
		return err
	}

	o.migrated[key] = true

	return nil
}

type gooseLogger struct {
	logger *zerolog.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

// migrate runs goose under an advisory lock so concurrent processes do not
// race on the same database.
func migrate(ctx context.Context, conn *pgx.Conn, cfg *pgx.ConnConfig, logger *zerolog.Logger) error {
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return fmt.Errorf("acquire advisory lock: %w", err)
	}

	defer func() {
		//nolint:errcheck // advisory unlock in defer is best-effort, lock released on connection close anyway
		_, _ = conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", migrationLockID)
	}()

	dbSQL := stdlib.OpenDB(*cfg)

	defer func() {
		_ = dbSQL.Close()
	}()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&gooseLogger{logger: logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, dbSQL, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Gateway is one connection scoped to a collection.
type Gateway struct {
	conn       *pgx.Conn
	collection string
}

var _ ports.StorageGateway = (*Gateway)(nil)

type recordRow struct {
	ExternalID  string
	StableID    string
	DisplayName pgtype.Text
	MimeType    pgtype.Text
	SizeBytes   pgtype.Int8
	ChannelID   pgtype.Text
}

func (r recordRow) toDomain() domain.VideoRecord {
	return domain.VideoRecord{
		ExternalID:  r.ExternalID,
		StableID:    r.StableID,
		DisplayName: r.DisplayName.String,
		MimeType:    r.MimeType.String,
		SizeBytes:   r.SizeBytes.Int64,
		ChannelID:   r.ChannelID.String,
	}
}

func scanRecord(row pgx.Row) (domain.VideoRecord, error) {
	var r recordRow

	if err := row.Scan(&r.ExternalID, &r.StableID, &r.DisplayName, &r.MimeType, &r.SizeBytes, &r.ChannelID); err != nil {
		return domain.VideoRecord{}, err //nolint:wrapcheck // wrapped by callers
	}

	return r.toDomain(), nil
}

// FindByStableID looks up a record in the gateway's collection.
func (g *Gateway) FindByStableID(ctx context.Context, stableID string) (domain.VideoRecord, bool, error) {
	rec, err := scanRecord(g.conn.QueryRow(ctx, sqlFindByStableID, g.collection, stableID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.VideoRecord{}, false, nil
	}

	if err != nil {
		return domain.VideoRecord{}, false, fmt.Errorf("find stable id %s: %w", stableID, err)
	}

	return rec, true, nil
}

// Insert adds a row. The unique index on (collection, stable_id) turns a lost
// race into ErrDuplicateRecord.
func (g *Gateway) Insert(ctx context.Context, record domain.VideoRecord) error {
	_, err := g.conn.Exec(ctx, sqlInsert,
		uuid.New(),
		g.collection,
		record.ExternalID,
		record.StableID,
		toText(record.DisplayName),
		toText(record.MimeType),
		toInt8(record.SizeBytes),
		toText(record.ChannelID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s: %w", record.StableID, apperrors.ErrDuplicateRecord)
		}

		return fmt.Errorf("insert %s: %w", record.StableID, err)
	}

	return nil
}

// FindAll returns the collection in insertion order.
func (g *Gateway) FindAll(ctx context.Context) ([]domain.VideoRecord, error) {
	rows, err := g.conn.Query(ctx, sqlFindAll, g.collection)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.VideoRecord

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Count returns the number of rows in the collection.
func (g *Gateway) Count(ctx context.Context) (int64, error) {
	var n int64

	if err := g.conn.QueryRow(ctx, sqlCount, g.collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	return n, nil
}

// Close closes the connection.
func (g *Gateway) Close(ctx context.Context) error {
	if err := g.conn.Close(ctx); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func toText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func toInt8(i int64) pgtype.Int8 {
	return pgtype.Int8{Int64: i, Valid: i != 0}
}
