package market

import (
	"context"
	"time"

	"priceoffers/models"

	"github.com/google/uuid"
)

// Store is the entity store the lifecycles run against. Missing rows are reported
// as models.ErrNotFound, unique violations as models.ErrDuplicate. Writes guarded by
// the row's state report models.ErrStale when the row has already left that state.
type Store interface {
	// InTx runs fn atomically; store calls made with the ctx passed to fn join the transaction.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUserName(ctx context.Context, id uuid.UUID, name string) error

	CreateCompany(ctx context.Context, c *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	FindCompanyByExternalID(ctx context.Context, ownerID uuid.UUID, externalID string) (*models.Company, error)
	// UpdateCompanyFields leaves is_deleted alone and only touches live companies.
	UpdateCompanyFields(ctx context.Context, c *models.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Company, error)

	CreateDemand(ctx context.Context, d *models.Demand) error
	GetDemand(ctx context.Context, id uuid.UUID) (*models.Demand, error)
	LockDemand(ctx context.Context, id uuid.UUID) (*models.Demand, error)
	// UpdateDemandFields and CloseDemand only touch open demands.
	UpdateDemandFields(ctx context.Context, d *models.Demand) error
	CloseDemand(ctx context.Context, id uuid.UUID) error
	ListDemands(ctx context.Context, f models.DemandFilter) ([]models.Demand, error)
	ExpireDemands(ctx context.Context, now time.Time) (int64, error)

	CreateNegotiation(ctx context.Context, n *models.Negotiation) error
	GetNegotiation(ctx context.Context, id uuid.UUID) (*models.Negotiation, error)
	// UpdateNegotiationPrice and SetNegotiationStatus only touch open negotiations.
	UpdateNegotiationPrice(ctx context.Context, id uuid.UUID, price float64, now time.Time) error
	SetNegotiationStatus(ctx context.Context, id uuid.UUID, status models.NegotiationStatus, now time.Time) error
	ListNegotiations(ctx context.Context, f models.NegotiationFilter) ([]models.Negotiation, error)
	RejectOpenNegotiations(ctx context.Context, demandID uuid.UUID, now time.Time) (int64, error)
	ListNegotiationsForUser(ctx context.Context, userID uuid.UUID) ([]models.Negotiation, error)

	CreateMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context, negotiationID uuid.UUID) ([]models.Message, error)

	CreateNotification(ctx context.Context, n *models.Notification) error
	GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
}
