package market

import (
	"context"
	"fmt"

	"priceoffers/models"

	"github.com/google/uuid"
)

// NegotiationPatch carries exactly one of Status or Price.
type NegotiationPatch struct {
	Status models.Optional[string]
	Price  models.Optional[float64]
}

// NegotiationListing is a negotiation with its demand, company and chat history.
type NegotiationListing struct {
	models.Negotiation
	Demand   models.Demand    `json:"demand"`
	Company  models.Company   `json:"company"`
	Messages []models.Message `json:"messages"`
}

func validatePrice(price float64) error {
	if price < 0 {
		return newError(KindInvalidInput, "sorry, but your price is too low")
	}
	return nil
}

// CreateNegotiation открывает переговоры компании по чужому открытому запросу.
// Вызывающий обязан владеть компанией.
func (s *Service) CreateNegotiation(ctx context.Context, callerID, demandID, companyID uuid.UUID, price float64) (*models.Negotiation, error) {
	d, err := s.loadDemand(ctx, demandID)
	if err != nil {
		return nil, err
	}
	c, err := s.loadCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := firstErr(
		requireDemandOpen(d),
		requireNotDemandOwner(d, callerID),
		requireCompanyOwnership(c, callerID),
		validatePrice(price),
	); err != nil {
		return nil, err
	}

	open, err := s.store.ListNegotiations(ctx, models.NegotiationFilter{
		Status:    models.NegotiationOpen,
		DemandID:  d.ID,
		CompanyID: c.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("list negotiations: %w", err)
	}
	if len(open) > 0 {
		return nil, newError(KindConflict, "sorry, you already reacted on this demand with this company")
	}

	n := &models.Negotiation{
		ID:         uuid.New(),
		DemandID:   d.ID,
		CompanyID:  c.ID,
		Price:      price,
		Status:     models.NegotiationOpen,
		LastChange: s.now(),
	}
	err = s.store.InTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateNegotiation(ctx, n); err != nil {
			return storeErr(err, "open negotiation for this demand and company")
		}
		if err := s.notify(ctx, c.OwnerID, "Negotiation about demand '%s' started.", d.Name); err != nil {
			return err
		}
		return s.notify(ctx, d.CreatorID, "Company '%s' started negotiation about '%s'.", c.Name, d.Name)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("negotiation created", "negotiation_id", n.ID, "demand_id", d.ID, "company_id", c.ID)
	return n, nil
}

// UpdateNegotiation применяет патч: ровно одно из полей status или price.
func (s *Service) UpdateNegotiation(ctx context.Context, callerID, negotiationID uuid.UUID, patch NegotiationPatch) (*models.Negotiation, error) {
	switch {
	case patch.Status.Set && patch.Price.Set:
		return nil, newError(KindInvalidInput, "you can not update two parameters at once")
	case patch.Status.Set:
		status, ok := models.ParseNegotiationStatus(patch.Status.Value)
		if !ok {
			return nil, newError(KindInvalidInput, "selected status %q is invalid", patch.Status.Value)
		}
		return s.UpdateNegotiationStatus(ctx, callerID, negotiationID, status)
	case patch.Price.Set:
		return s.UpdateNegotiationPrice(ctx, callerID, negotiationID, patch.Price.Value)
	}
	return nil, newError(KindInvalidInput, "was not able to find arguments to update")
}

// UpdateNegotiationStatus принимает или отклоняет предложение; доступно только автору запроса.
// Одобрение закрывает запрос и отклоняет остальные открытые переговоры по нему.
func (s *Service) UpdateNegotiationStatus(ctx context.Context, callerID, negotiationID uuid.UUID, status models.NegotiationStatus) (*models.Negotiation, error) {
	n, err := s.loadNegotiation(ctx, negotiationID)
	if err != nil {
		return nil, err
	}
	if err := requireNegotiationOpen(n); err != nil {
		return nil, err
	}
	d, err := s.loadDemand(ctx, n.DemandID)
	if err != nil {
		return nil, err
	}
	c, err := s.loadCompany(ctx, n.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := firstErr(requireDemandOwnership(d, callerID), requireDemandOpen(d)); err != nil {
		return nil, err
	}
	if status != models.NegotiationApproved && status != models.NegotiationRejected {
		return nil, newError(KindInvalidInput, "selected status %q is invalid", status)
	}

	var rejected int64
	err = s.store.InTx(ctx, func(ctx context.Context) error {
		// перепроверяем под блокировкой строки запроса
		locked, err := s.store.LockDemand(ctx, d.ID)
		if err != nil {
			return storeErr(err, "demand")
		}
		if err := requireDemandOpen(locked); err != nil {
			return err
		}
		current, err := s.loadNegotiation(ctx, n.ID)
		if err != nil {
			return err
		}
		if err := requireNegotiationOpen(current); err != nil {
			return err
		}

		now := s.now()
		if err := s.store.SetNegotiationStatus(ctx, current.ID, status, now); err != nil {
			return storeErr(err, "negotiation")
		}
		current.Status = status
		current.LastChange = now

		if status == models.NegotiationApproved {
			if err := s.store.CloseDemand(ctx, locked.ID); err != nil {
				return storeErr(err, "demand")
			}
			rejected, err = s.store.RejectOpenNegotiations(ctx, locked.ID, now)
			if err != nil {
				return fmt.Errorf("reject sibling negotiations: %w", err)
			}
		}

		n = current
		return s.notify(ctx, c.OwnerID, "Negotiation status for demand '%s' was updated to '%s'.", d.Name, status)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("negotiation status updated",
		"negotiation_id", n.ID, "demand_id", d.ID, "status", status, "siblings_rejected", rejected)
	return n, nil
}

// UpdateNegotiationPrice меняет цену предложения; доступно только владельцу компании.
func (s *Service) UpdateNegotiationPrice(ctx context.Context, callerID, negotiationID uuid.UUID, price float64) (*models.Negotiation, error) {
	n, err := s.loadNegotiation(ctx, negotiationID)
	if err != nil {
		return nil, err
	}
	if err := requireNegotiationOpen(n); err != nil {
		return nil, err
	}
	c, err := s.loadCompany(ctx, n.CompanyID)
	if err != nil {
		return nil, err
	}
	d, err := s.loadDemand(ctx, n.DemandID)
	if err != nil {
		return nil, err
	}
	if err := firstErr(requireCompanyOwnership(c, callerID), validatePrice(price)); err != nil {
		return nil, err
	}

	updated := *n
	updated.Price = price
	updated.LastChange = s.now()
	err = s.store.InTx(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateNegotiationPrice(ctx, n.ID, price, updated.LastChange); err != nil {
			return storeErr(err, "negotiation")
		}
		return s.notify(ctx, d.CreatorID, "Price for demand '%s' was updated to: %.2f€.", d.Name, price)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListNegotiations возвращает переговоры, где пользователь владеет компанией или создал запрос.
func (s *Service) ListNegotiations(ctx context.Context, callerID uuid.UUID) ([]NegotiationListing, error) {
	negotiations, err := s.store.ListNegotiationsForUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list negotiations: %w", err)
	}

	demands := make(map[uuid.UUID]*models.Demand)
	companies := make(map[uuid.UUID]*models.Company)
	out := make([]NegotiationListing, 0, len(negotiations))
	for _, n := range negotiations {
		d, ok := demands[n.DemandID]
		if !ok {
			if d, err = s.loadDemand(ctx, n.DemandID); err != nil {
				return nil, err
			}
			demands[n.DemandID] = d
		}
		c, ok := companies[n.CompanyID]
		if !ok {
			if c, err = s.loadCompany(ctx, n.CompanyID); err != nil {
				return nil, err
			}
			companies[n.CompanyID] = c
		}
		messages, err := s.store.ListMessages(ctx, n.ID)
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		out = append(out, NegotiationListing{Negotiation: n, Demand: *d, Company: *c, Messages: messages})
	}
	return out, nil
}
