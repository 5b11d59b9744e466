package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"priceoffers/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Storage реализует хранилище сущностей поверх PostgreSQL.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

type txKey struct{}

// conn возвращает транзакцию из контекста, если она открыта, иначе пул соединений.
func (s *Storage) conn(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return s.db
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return ok
}

// InTx выполняет fn в одной транзакции. Вложенные вызовы используют внешнюю транзакцию.
func (s *Storage) InTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// mapErr переводит ошибки драйвера в ошибки хранилища из models.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("%w: %s", models.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

// expectOne возвращает ErrNotFound, если UPDATE/DELETE не затронул ни одной строки.
func expectOne(res sql.Result, err error) error {
	return expectRows(res, err, models.ErrNotFound)
}

// expectState используется для UPDATE с условием на статус: ноль строк значит,
// что строку успели перевести в другое состояние.
func expectState(res sql.Result, err error) error {
	return expectRows(res, err, models.ErrStale)
}

func expectRows(res sql.Result, err error, none error) error {
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return none
	}
	return nil
}
