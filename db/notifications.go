package db

import (
	"context"

	"priceoffers/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Notification (Уведомление)

func (s *Storage) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	query := `
        INSERT INTO notification (id, user_id, description, created)
        VALUES ($1, $2, $3, $4)`
	_, err := s.conn(ctx).ExecContext(ctx, query, n.ID, n.UserID, n.Description, n.Created)
	return mapErr(err)
}

func (s *Storage) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	n := &models.Notification{}
	query := `SELECT id, user_id, description, created FROM notification WHERE id=$1`
	if err := sqlx.GetContext(ctx, s.conn(ctx), n, query, id); err != nil {
		return nil, mapErr(err)
	}
	return n, nil
}

func (s *Storage) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notification WHERE id=$1`
	return expectOne(s.conn(ctx).ExecContext(ctx, query, id))
}

func (s *Storage) ListNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	query := `
        SELECT id, user_id, description, created
        FROM notification
        WHERE user_id=$1
        ORDER BY created DESC`
	notifications := []models.Notification{}
	if err := sqlx.SelectContext(ctx, s.conn(ctx), &notifications, query, userID); err != nil {
		return nil, mapErr(err)
	}
	return notifications, nil
}
