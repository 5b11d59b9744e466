package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"priceoffers/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Demand (Запрос)

const demandColumns = `id, creator_id, name, budget, description, until, status, created_at`

func (s *Storage) CreateDemand(ctx context.Context, d *models.Demand) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	query := `
        INSERT INTO demand
            (id, creator_id, name, budget, description, until, status)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`
	err := s.conn(ctx).QueryRowxContext(ctx, query,
		d.ID, d.CreatorID, d.Name, d.Budget, d.Description, d.Until, d.Status).
		Scan(&d.CreatedAt)
	return mapErr(err)
}

func (s *Storage) GetDemand(ctx context.Context, id uuid.UUID) (*models.Demand, error) {
	d := &models.Demand{}
	query := `SELECT ` + demandColumns + ` FROM demand WHERE id=$1`
	if err := sqlx.GetContext(ctx, s.conn(ctx), d, query, id); err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

// LockDemand читает запрос с блокировкой строки до конца транзакции.
func (s *Storage) LockDemand(ctx context.Context, id uuid.UUID) (*models.Demand, error) {
	if !inTx(ctx) {
		return s.GetDemand(ctx, id)
	}
	d := &models.Demand{}
	query := `SELECT ` + demandColumns + ` FROM demand WHERE id=$1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, s.conn(ctx), d, query, id); err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

// UpdateDemandFields переписывает редактируемые поля открытого запроса; статус не трогает.
func (s *Storage) UpdateDemandFields(ctx context.Context, d *models.Demand) error {
	query := `
        UPDATE demand
        SET name=$1, budget=$2, description=$3, until=$4
        WHERE id=$5 AND status=$6`
	return expectState(s.conn(ctx).ExecContext(ctx, query,
		d.Name, d.Budget, d.Description, d.Until, d.ID, models.DemandOpen))
}

func (s *Storage) CloseDemand(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE demand SET status=$1 WHERE id=$2 AND status=$3`
	return expectState(s.conn(ctx).ExecContext(ctx, query, models.DemandClosed, id, models.DemandOpen))
}

func (s *Storage) ListDemands(ctx context.Context, f models.DemandFilter) ([]models.Demand, error) {
	var (
		conds []string
		args  []interface{}
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CreatorID != uuid.Nil {
		args = append(args, f.CreatorID)
		conds = append(conds, fmt.Sprintf("creator_id = $%d", len(args)))
	}

	query := `SELECT ` + demandColumns + ` FROM demand`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY until ASC"

	demands := []models.Demand{}
	if err := sqlx.SelectContext(ctx, s.conn(ctx), &demands, query, args...); err != nil {
		return nil, mapErr(err)
	}
	return demands, nil
}

// ExpireDemands переводит открытые запросы с истёкшим сроком в expired.
func (s *Storage) ExpireDemands(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE demand SET status=$1 WHERE status=$2 AND until < $3`
	res, err := s.conn(ctx).ExecContext(ctx, query, models.DemandExpired, models.DemandOpen, now)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.RowsAffected()
}
