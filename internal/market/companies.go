package market

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"priceoffers/models"

	"github.com/google/uuid"
)

type CompanyInput struct {
	Name              string
	Residence         string
	Specialization    string
	Phone             string
	ExternalCompanyID string
}

type CompanyPatch struct {
	Name              models.Optional[string]
	Residence         models.Optional[string]
	Specialization    models.Optional[string]
	Phone             models.Optional[string]
	ExternalCompanyID models.Optional[string]
}

var errCompanyRegistered = newError(KindConflict, "this company is already registered for your account")

func companyWriteErr(err error, c *models.Company) error {
	switch {
	case errors.Is(err, models.ErrDuplicate):
		return errCompanyRegistered
	case errors.Is(err, models.ErrStale):
		return newError(KindGone, "company %q was already deleted", c.Name)
	}
	return storeErr(err, "company")
}

// externalIDTaken проверяет, занят ли внешний идентификатор другой компанией владельца.
func (s *Service) externalIDTaken(ctx context.Context, ownerID uuid.UUID, externalID string, self uuid.UUID) (bool, error) {
	existing, err := s.store.FindCompanyByExternalID(ctx, ownerID, externalID)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find company: %w", err)
	}
	return existing.ID != self, nil
}

func (s *Service) CreateCompany(ctx context.Context, callerID uuid.UUID, in CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(in.Name)
	externalID := strings.TrimSpace(in.ExternalCompanyID)
	if name == "" || externalID == "" {
		return nil, newError(KindInvalidInput, "company name and company id are required")
	}

	taken, err := s.externalIDTaken(ctx, callerID, externalID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errCompanyRegistered
	}

	c := &models.Company{
		ID:                uuid.New(),
		OwnerID:           callerID,
		Name:              name,
		Residence:         in.Residence,
		Specialization:    in.Specialization,
		Phone:             in.Phone,
		ExternalCompanyID: externalID,
	}
	if err := s.store.CreateCompany(ctx, c); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, errCompanyRegistered
		}
		return nil, storeErr(err, "company")
	}
	return c, nil
}

func (s *Service) UpdateCompany(ctx context.Context, callerID, companyID uuid.UUID, patch CompanyPatch) (*models.Company, error) {
	c, err := s.loadCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := requireCompanyOwnership(c, callerID); err != nil {
		return nil, err
	}

	updated := *c
	updated.Name = strings.TrimSpace(patch.Name.Or(c.Name))
	updated.Residence = patch.Residence.Or(c.Residence)
	updated.Specialization = patch.Specialization.Or(c.Specialization)
	updated.Phone = patch.Phone.Or(c.Phone)
	updated.ExternalCompanyID = strings.TrimSpace(patch.ExternalCompanyID.Or(c.ExternalCompanyID))
	if updated.Name == "" || updated.ExternalCompanyID == "" {
		return nil, newError(KindInvalidInput, "company name and company id are required")
	}

	if updated.ExternalCompanyID != c.ExternalCompanyID {
		taken, err := s.externalIDTaken(ctx, callerID, updated.ExternalCompanyID, c.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errCompanyRegistered
		}
	}

	if err := s.store.UpdateCompanyFields(ctx, &updated); err != nil {
		return nil, companyWriteErr(err, c)
	}
	return &updated, nil
}

// DeleteCompany помечает компанию удалённой; строка остаётся в хранилище.
func (s *Service) DeleteCompany(ctx context.Context, callerID, companyID uuid.UUID) error {
	c, err := s.loadCompany(ctx, companyID)
	if err != nil {
		return err
	}
	if err := requireCompanyOwnership(c, callerID); err != nil {
		return err
	}

	if err := s.store.DeleteCompany(ctx, c.ID); err != nil {
		return companyWriteErr(err, c)
	}
	s.log.Info("company deleted", "company_id", c.ID, "user_id", callerID)
	return nil
}

func (s *Service) ListCompanies(ctx context.Context, callerID uuid.UUID) ([]models.Company, error) {
	companies, err := s.store.ListCompaniesByOwner(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}
