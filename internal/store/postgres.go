package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const documentsTableName = `documents`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Postgres keeps every document in a single key/jsonb table.
type Postgres struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgres(db *sqlx.DB, log *zap.Logger) *Postgres {
	return &Postgres{
		db:  db,
		log: log.Named("store"),
	}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := qb.Select("value").
		From(documentsTableName).
		Where(sq.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, false, err
	}

	var raw []byte
	if err := p.db.GetContext(ctx, &raw, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		p.log.Error("Get", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}
	return raw, true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := qb.Insert(documentsTableName).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("now()")).
		Suffix("on conflict (key) do update set value = excluded.value, updated_at = now()").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		p.log.Error("Set", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	query, args, err := qb.Delete(documentsTableName).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, query, args...)
	return err
}
