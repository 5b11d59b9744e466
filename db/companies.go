package db

import (
	"context"

	"priceoffers/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Company (Компания)

const companyColumns = `id, owner_id, name, residence, specialization, phone, external_company_id, is_deleted, created_at`

func (s *Storage) CreateCompany(ctx context.Context, c *models.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	query := `
        INSERT INTO company
            (id, owner_id, name, residence, specialization, phone, external_company_id, is_deleted)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, FALSE)
        RETURNING created_at`
	err := s.conn(ctx).QueryRowxContext(ctx, query,
		c.ID, c.OwnerID, c.Name, c.Residence, c.Specialization, c.Phone, c.ExternalCompanyID).
		Scan(&c.CreatedAt)
	return mapErr(err)
}

func (s *Storage) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	c := &models.Company{}
	query := `SELECT ` + companyColumns + ` FROM company WHERE id=$1`
	if err := sqlx.GetContext(ctx, s.conn(ctx), c, query, id); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

// FindCompanyByExternalID ищет компанию владельца по внешнему идентификатору, включая удалённые.
func (s *Storage) FindCompanyByExternalID(ctx context.Context, ownerID uuid.UUID, externalID string) (*models.Company, error) {
	c := &models.Company{}
	query := `SELECT ` + companyColumns + ` FROM company WHERE owner_id=$1 AND external_company_id=$2`
	if err := sqlx.GetContext(ctx, s.conn(ctx), c, query, ownerID, externalID); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

// UpdateCompanyFields переписывает карточку компании, пока она не удалена; is_deleted не трогает.
func (s *Storage) UpdateCompanyFields(ctx context.Context, c *models.Company) error {
	query := `
        UPDATE company
        SET name=$1, residence=$2, specialization=$3, phone=$4, external_company_id=$5
        WHERE id=$6 AND is_deleted=FALSE`
	return expectState(s.conn(ctx).ExecContext(ctx, query,
		c.Name, c.Residence, c.Specialization, c.Phone, c.ExternalCompanyID, c.ID))
}

func (s *Storage) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE company SET is_deleted=TRUE WHERE id=$1 AND is_deleted=FALSE`
	return expectState(s.conn(ctx).ExecContext(ctx, query, id))
}

func (s *Storage) ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Company, error) {
	query := `
        SELECT ` + companyColumns + ` FROM company
        WHERE owner_id=$1 AND is_deleted=FALSE
        ORDER BY name ASC`
	companies := []models.Company{}
	if err := sqlx.SelectContext(ctx, s.conn(ctx), &companies, query, ownerID); err != nil {
		return nil, mapErr(err)
	}
	return companies, nil
}
