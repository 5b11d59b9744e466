package market

import (
	"priceoffers/models"

	"github.com/google/uuid"
)

// Проверки прав и состояний. Работают только с уже загруженными сущностями.

func requireCompanyOwnership(c *models.Company, callerID uuid.UUID) error {
	if c.OwnerID != callerID {
		return newError(KindForbidden, "this registration of the company does not belong to you")
	}
	if c.IsDeleted {
		return newError(KindGone, "company %q was already deleted", c.Name)
	}
	return nil
}

func requireDemandOwnership(d *models.Demand, callerID uuid.UUID) error {
	if d.CreatorID != callerID {
		return newError(KindForbidden, "you do not have permissions to manipulate with this demand")
	}
	return nil
}

func requireNotDemandOwner(d *models.Demand, callerID uuid.UUID) error {
	if d.CreatorID == callerID {
		return newError(KindConflict, "cannot negotiate your own demand")
	}
	return nil
}

func requireDemandOpen(d *models.Demand) error {
	if d.Status != models.DemandOpen {
		return newError(KindInvalidState, "demand %q is %s", d.Name, d.Status)
	}
	return nil
}

func requireNegotiationOpen(n *models.Negotiation) error {
	if n.Status != models.NegotiationOpen {
		return newError(KindInvalidState, "negotiation is already %s", n.Status)
	}
	return nil
}

// firstErr возвращает первую ошибку в порядке проверок.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
