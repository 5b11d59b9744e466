package db

import (
	"context"

	"priceoffers/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Message (Сообщение)

func (s *Storage) CreateMessage(ctx context.Context, m *models.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	query := `
        INSERT INTO message (id, negotiation_id, sender_id, content, is_deleted, last_change)
        VALUES ($1, $2, $3, $4, FALSE, $5)`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		m.ID, m.NegotiationID, m.SenderID, m.Content, m.LastChange)
	return mapErr(err)
}

func (s *Storage) ListMessages(ctx context.Context, negotiationID uuid.UUID) ([]models.Message, error) {
	query := `
        SELECT id, negotiation_id, sender_id, content, is_deleted, last_change
        FROM message
        WHERE negotiation_id=$1 AND is_deleted=FALSE
        ORDER BY last_change ASC`
	messages := []models.Message{}
	if err := sqlx.SelectContext(ctx, s.conn(ctx), &messages, query, negotiationID); err != nil {
		return nil, mapErr(err)
	}
	return messages, nil
}
