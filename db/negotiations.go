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

// Negotiation (Переговоры)

const negotiationColumns = `n.id, n.demand_id, n.company_id, n.price, n.status, n.last_change`

func (s *Storage) CreateNegotiation(ctx context.Context, n *models.Negotiation) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	// Частичный уникальный индекс negotiation_one_open_idx не даёт создать вторые открытые переговоры
	query := `
        INSERT INTO negotiation
            (id, demand_id, company_id, price, status, last_change)
        VALUES
            ($1, $2, $3, $4, $5, $6)`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		n.ID, n.DemandID, n.CompanyID, n.Price, n.Status, n.LastChange)
	return mapErr(err)
}

func (s *Storage) GetNegotiation(ctx context.Context, id uuid.UUID) (*models.Negotiation, error) {
	n := &models.Negotiation{}
	query := `SELECT ` + negotiationColumns + ` FROM negotiation n WHERE n.id=$1`
	if err := sqlx.GetContext(ctx, s.conn(ctx), n, query, id); err != nil {
		return nil, mapErr(err)
	}
	return n, nil
}

// UpdateNegotiationPrice меняет цену только у открытых переговоров.
func (s *Storage) UpdateNegotiationPrice(ctx context.Context, id uuid.UUID, price float64, now time.Time) error {
	query := `
        UPDATE negotiation
        SET price=$1, last_change=$2
        WHERE id=$3 AND status=$4`
	return expectState(s.conn(ctx).ExecContext(ctx, query, price, now, id, models.NegotiationOpen))
}

// SetNegotiationStatus переводит открытые переговоры в итоговый статус.
func (s *Storage) SetNegotiationStatus(ctx context.Context, id uuid.UUID, status models.NegotiationStatus, now time.Time) error {
	query := `
        UPDATE negotiation
        SET status=$1, last_change=$2
        WHERE id=$3 AND status=$4`
	return expectState(s.conn(ctx).ExecContext(ctx, query, status, now, id, models.NegotiationOpen))
}

func (s *Storage) ListNegotiations(ctx context.Context, f models.NegotiationFilter) ([]models.Negotiation, error) {
	var (
		conds []string
		args  []interface{}
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("n.status = $%d", len(args)))
	}
	if f.DemandID != uuid.Nil {
		args = append(args, f.DemandID)
		conds = append(conds, fmt.Sprintf("n.demand_id = $%d", len(args)))
	}
	if f.CompanyID != uuid.Nil {
		args = append(args, f.CompanyID)
		conds = append(conds, fmt.Sprintf("n.company_id = $%d", len(args)))
	}

	query := `SELECT ` + negotiationColumns + ` FROM negotiation n`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY n.last_change DESC"

	negotiations := []models.Negotiation{}
	if err := sqlx.SelectContext(ctx, s.conn(ctx), &negotiations, query, args...); err != nil {
		return nil, mapErr(err)
	}
	return negotiations, nil
}

// RejectOpenNegotiations отклоняет все открытые переговоры по запросу.
func (s *Storage) RejectOpenNegotiations(ctx context.Context, demandID uuid.UUID, now time.Time) (int64, error) {
	query := `
        UPDATE negotiation
        SET status=$1, last_change=$2
        WHERE demand_id=$3 AND status=$4`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		models.NegotiationRejected, now, demandID, models.NegotiationOpen)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.RowsAffected()
}

// ListNegotiationsForUser возвращает переговоры, где пользователь владеет компанией или запросом.
func (s *Storage) ListNegotiationsForUser(ctx context.Context, userID uuid.UUID) ([]models.Negotiation, error) {
	query := `
        SELECT ` + negotiationColumns + `
        FROM negotiation n
        JOIN company c ON c.id = n.company_id
        JOIN demand d ON d.id = n.demand_id
        WHERE c.owner_id = $1 OR d.creator_id = $1
        ORDER BY n.last_change DESC`
	negotiations := []models.Negotiation{}
	if err := sqlx.SelectContext(ctx, s.conn(ctx), &negotiations, query, userID); err != nil {
		return nil, mapErr(err)
	}
	return negotiations, nil
}
