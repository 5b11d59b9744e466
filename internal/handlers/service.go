package handlers

import (
	"context"

	"priceoffers/internal/market"
	"priceoffers/models"

	"github.com/google/uuid"
)

// MarketService содержит операции ядра, доступные HTTP-слою. Реализуется *market.Service.
type MarketService interface {
	Profile(ctx context.Context, callerID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, callerID uuid.UUID, patch market.ProfilePatch) (*models.User, error)
	ListNotifications(ctx context.Context, callerID uuid.UUID) ([]models.Notification, error)
	DeleteNotification(ctx context.Context, callerID, notificationID uuid.UUID) error

	CreateCompany(ctx context.Context, callerID uuid.UUID, in market.CompanyInput) (*models.Company, error)
	UpdateCompany(ctx context.Context, callerID, companyID uuid.UUID, patch market.CompanyPatch) (*models.Company, error)
	DeleteCompany(ctx context.Context, callerID, companyID uuid.UUID) error
	ListCompanies(ctx context.Context, callerID uuid.UUID) ([]models.Company, error)

	CreateDemand(ctx context.Context, callerID uuid.UUID, in market.DemandInput) (*models.Demand, error)
	UpdateDemand(ctx context.Context, callerID, demandID uuid.UUID, patch market.DemandPatch) (*models.Demand, error)
	CloseDemand(ctx context.Context, callerID, demandID uuid.UUID) error
	ListOpenDemands(ctx context.Context) ([]market.DemandListing, error)
	ListMyDemands(ctx context.Context, callerID uuid.UUID) ([]market.DemandListing, error)

	CreateNegotiation(ctx context.Context, callerID, demandID, companyID uuid.UUID, price float64) (*models.Negotiation, error)
	UpdateNegotiation(ctx context.Context, callerID, negotiationID uuid.UUID, patch market.NegotiationPatch) (*models.Negotiation, error)
	ListNegotiations(ctx context.Context, callerID uuid.UUID) ([]market.NegotiationListing, error)

	SendMessage(ctx context.Context, callerID, negotiationID uuid.UUID, content string) (*models.Message, error)
}

var _ MarketService = (*market.Service)(nil)
