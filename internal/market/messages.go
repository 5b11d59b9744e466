package market

import (
	"context"
	"strings"

	"priceoffers/models"

	"github.com/google/uuid"
)

// SendMessage добавляет сообщение в переговоры и уведомляет другую сторону.
// Писать могут только владелец компании и автор запроса; в отклонённые переговоры писать нельзя.
func (s *Service) SendMessage(ctx context.Context, callerID, negotiationID uuid.UUID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, newError(KindInvalidInput, "message must not be empty")
	}

	n, err := s.loadNegotiation(ctx, negotiationID)
	if err != nil {
		return nil, err
	}
	if n.Status == models.NegotiationRejected {
		return nil, newError(KindGone, "sorry, but this conversation is already closed")
	}
	c, err := s.loadCompany(ctx, n.CompanyID)
	if err != nil {
		return nil, err
	}
	d, err := s.loadDemand(ctx, n.DemandID)
	if err != nil {
		return nil, err
	}

	var (
		recipient uuid.UUID
		note      string
	)
	switch callerID {
	case c.OwnerID:
		recipient = d.CreatorID
		note = "You have new message for your demand '%s'."
	case d.CreatorID:
		recipient = c.OwnerID
		note = "You received company message about demand '%s'."
	default:
		return nil, newError(KindForbidden, "only negotiation parties can send messages")
	}

	m := &models.Message{
		ID:            uuid.New(),
		NegotiationID: n.ID,
		SenderID:      callerID,
		Content:       content,
		LastChange:    s.now(),
	}
	err = s.store.InTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateMessage(ctx, m); err != nil {
			return storeErr(err, "message")
		}
		return s.notify(ctx, recipient, note, d.Name)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
