package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"priceoffers/models"

	"github.com/google/uuid"
)

type DemandInput struct {
	Name        string
	Budget      float64
	Description string
	Until       time.Time
}

// DemandPatch is a merge patch: only fields marked Set are applied.
type DemandPatch struct {
	Name        models.Optional[string]
	Budget      models.Optional[float64]
	Description models.Optional[string]
	Until       models.Optional[time.Time]
}

// DemandListing is a demand enriched with its creator's contact details.
type DemandListing struct {
	models.Demand
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

func validateBudget(budget float64) error {
	if budget <= 0 {
		return newError(KindInvalidInput, "sorry, but your budget is too low")
	}
	return nil
}

func validateUntil(until, now time.Time) error {
	if !until.After(now) {
		return newError(KindInvalidInput, "sorry, but selected date is already expired")
	}
	return nil
}

func (s *Service) CreateDemand(ctx context.Context, callerID uuid.UUID, in DemandInput) (*models.Demand, error) {
	now := s.now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newError(KindInvalidInput, "demand name is required")
	}
	if err := firstErr(validateBudget(in.Budget), validateUntil(in.Until, now)); err != nil {
		return nil, err
	}

	d := &models.Demand{
		ID:          uuid.New(),
		CreatorID:   callerID,
		Name:        name,
		Budget:      in.Budget,
		Description: in.Description,
		Until:       in.Until.UTC(),
		Status:      models.DemandOpen,
	}
	if err := s.store.CreateDemand(ctx, d); err != nil {
		return nil, storeErr(err, "demand")
	}

	s.log.Info("demand created", "demand_id", d.ID, "user_id", callerID)
	return d, nil
}

func (s *Service) UpdateDemand(ctx context.Context, callerID, demandID uuid.UUID, patch DemandPatch) (*models.Demand, error) {
	d, err := s.loadDemand(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if err := firstErr(requireDemandOwnership(d, callerID), requireDemandOpen(d)); err != nil {
		return nil, err
	}

	if patch.Name.Set && strings.TrimSpace(patch.Name.Value) == "" {
		return nil, newError(KindInvalidInput, "demand name is required")
	}
	if patch.Budget.Set {
		if err := validateBudget(patch.Budget.Value); err != nil {
			return nil, err
		}
	}
	if patch.Until.Set {
		if err := validateUntil(patch.Until.Value, s.now()); err != nil {
			return nil, err
		}
	}

	updated := *d
	updated.Name = strings.TrimSpace(patch.Name.Or(d.Name))
	updated.Budget = patch.Budget.Or(d.Budget)
	updated.Description = patch.Description.Or(d.Description)
	updated.Until = patch.Until.Or(d.Until).UTC()

	if err := s.store.UpdateDemandFields(ctx, &updated); err != nil {
		return nil, storeErr(err, "demand")
	}
	return &updated, nil
}

// CloseDemand закрывает запрос по просьбе владельца. Повторный вызов вернёт InvalidState.
func (s *Service) CloseDemand(ctx context.Context, callerID, demandID uuid.UUID) error {
	d, err := s.loadDemand(ctx, demandID)
	if err != nil {
		return err
	}
	if err := firstErr(requireDemandOwnership(d, callerID), requireDemandOpen(d)); err != nil {
		return err
	}

	if err := s.store.CloseDemand(ctx, d.ID); err != nil {
		return storeErr(err, "demand")
	}

	s.log.Info("demand closed by owner", "demand_id", d.ID, "user_id", callerID)
	return nil
}

// ExpireOverdue переводит все открытые запросы с прошедшим сроком в expired.
func (s *Service) ExpireOverdue(ctx context.Context) (int64, error) {
	n, err := s.store.ExpireDemands(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("expire demands: %w", err)
	}
	if n > 0 {
		s.log.Info("demands expired", "count", n)
	}
	return n, nil
}

// ListDemands запускает проверку сроков и возвращает запросы по фильтру,
// отсортированные по until, с именем и почтой автора.
func (s *Service) ListDemands(ctx context.Context, filter models.DemandFilter) ([]DemandListing, error) {
	if _, err := s.ExpireOverdue(ctx); err != nil {
		return nil, err
	}

	demands, err := s.store.ListDemands(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list demands: %w", err)
	}

	users := make(map[uuid.UUID]*models.User)
	out := make([]DemandListing, 0, len(demands))
	for _, d := range demands {
		u, ok := users[d.CreatorID]
		if !ok {
			u, err = s.store.GetUser(ctx, d.CreatorID)
			if err != nil {
				return nil, storeErr(err, "demand creator")
			}
			users[d.CreatorID] = u
		}
		out = append(out, DemandListing{Demand: d, UserName: u.Name, UserEmail: u.Email})
	}
	return out, nil
}

// ListOpenDemands возвращает все активные запросы.
func (s *Service) ListOpenDemands(ctx context.Context) ([]DemandListing, error) {
	return s.ListDemands(ctx, models.DemandFilter{Status: models.DemandOpen})
}

// ListMyDemands возвращает активные запросы вызывающего пользователя.
func (s *Service) ListMyDemands(ctx context.Context, callerID uuid.UUID) ([]DemandListing, error) {
	return s.ListDemands(ctx, models.DemandFilter{Status: models.DemandOpen, CreatorID: callerID})
}
