package market

import (
	"context"
	"testing"
	"time"

	"priceoffers/internal/logger"
	"priceoffers/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *memStore
	svc   *Service
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: newMemStore(), now: testNow}
	f.svc = New(f.store, logger.Nop(), WithClock(func() time.Time { return f.now }))
	return f
}

func (f *fixture) user(t *testing.T, name string) uuid.UUID {
	t.Helper()
	return f.store.addUser(name, name+"@example.com")
}

func (f *fixture) company(t *testing.T, owner uuid.UUID, name string) *models.Company {
	t.Helper()
	c, err := f.svc.CreateCompany(context.Background(), owner, CompanyInput{
		Name:              name,
		ExternalCompanyID: "ext-" + name,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) demand(t *testing.T, creator uuid.UUID, name string) *models.Demand {
	t.Helper()
	d, err := f.svc.CreateDemand(context.Background(), creator, DemandInput{
		Name:   name,
		Budget: 100,
		Until:  f.now.Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) negotiation(t *testing.T, caller, demandID, companyID uuid.UUID, price float64) *models.Negotiation {
	t.Helper()
	n, err := f.svc.CreateNegotiation(context.Background(), caller, demandID, companyID, price)
	require.NoError(t, err)
	return n
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
