package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"priceoffers/internal/logger"
	"priceoffers/models"

	"github.com/google/uuid"
)

// Service holds the demand and negotiation lifecycles. Every operation takes the
// caller's user id explicitly; nothing is read from request-scoped state.
type Service struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
}

type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   log.With("component", "market"),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// storeErr переводит ошибки хранилища в доменные.
func storeErr(err error, what string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return newError(KindNotFound, "%s was not found", what)
	case errors.Is(err, models.ErrDuplicate):
		return newError(KindConflict, "%s already exists", what)
	case errors.Is(err, models.ErrStale):
		return newError(KindInvalidState, "%s is not active anymore", what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func (s *Service) loadDemand(ctx context.Context, id uuid.UUID) (*models.Demand, error) {
	d, err := s.store.GetDemand(ctx, id)
	if err != nil {
		return nil, storeErr(err, "demand")
	}
	return d, nil
}

func (s *Service) loadCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	c, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return nil, storeErr(err, "company")
	}
	return c, nil
}

func (s *Service) loadNegotiation(ctx context.Context, id uuid.UUID) (*models.Negotiation, error) {
	n, err := s.store.GetNegotiation(ctx, id)
	if err != nil {
		return nil, storeErr(err, "negotiation")
	}
	return n, nil
}

// notify дописывает уведомление в ленту пользователя.
func (s *Service) notify(ctx context.Context, userID uuid.UUID, format string, args ...interface{}) error {
	n := &models.Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Description: fmt.Sprintf(format, args...),
		Created:     s.now(),
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}
