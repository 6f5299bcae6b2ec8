package pgxstorage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey int

const (
	transactionKey contextKey = iota
)

var errInvalidTransaction = errors.New("invalid transaction type")

type DBFactory interface {
	Create(ctx context.Context) (*pgxpool.Pool, error)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

type DBStorage struct {
	pool   *pgxpool.Pool
	txOpts pgx.TxOptions
}

func New(ctx context.Context, dbFactory DBFactory) (*DBStorage, error) {
	pool, err := dbFactory.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	return &DBStorage{
		pool:   pool,
		txOpts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
	}, nil
}

func (s *DBStorage) Close() {
	s.pool.Close()
}

func (s *DBStorage) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	q, err := s.querier(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return q.Exec(ctx, query, args...) //nolint:wrapcheck // unnecessary
}

func (s *DBStorage) QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error) {
	q, err := s.querier(ctx)
	if err != nil {
		return nil, err
	}
	return q.QueryRow(ctx, query, args...), nil
}

func (s *DBStorage) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	q, err := s.querier(ctx)
	if err != nil {
		return nil, err
	}
	return q.Query(ctx, query, args...) //nolint:wrapcheck // unnecessary
}

// QueryValue scans the single row returned by query into dest.
// pgx.ErrNoRows is returned unchanged.
func (s *DBStorage) QueryValue(ctx context.Context, query string, args []any, dest []any) error {
	row, err := s.QueryRow(ctx, query, args...)
	if err != nil {
		return err
	}
	return row.Scan(dest...) //nolint:wrapcheck // callers inspect pgx.ErrNoRows
}

func (s *DBStorage) querier(ctx context.Context) (querier, error) {
	tx, ok, err := getTransaction(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return tx, nil
	}
	return s.pool, nil
}

func (s *DBStorage) withTransaction(ctx context.Context) (context.Context, pgx.Tx, error) {
	tx, err := s.pool.BeginTx(ctx, s.txOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("transaction begin failed: %w", err)
	}
	ctxWithTransaction := context.WithValue(ctx, transactionKey, tx)
	return ctxWithTransaction, tx, nil
}

func getTransaction(ctx context.Context) (pgx.Tx, bool, error) {
	txVal := ctx.Value(transactionKey)
	if txVal == nil {
		return nil, false, nil
	}
	tx, ok := txVal.(pgx.Tx)
	if !ok {
		return nil, false, errInvalidTransaction
	}
	return tx, true, nil
}
