package market

import (
	"context"
	"sort"
	"sync"
	"time"

	"priceoffers/models"

	"github.com/google/uuid"
)

// memStore хранит сущности в памяти и повторяет ограничения SQL-схемы.
// InTx откатывает все изменения, если fn вернула ошибку.
type memStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]models.User
	companies     map[uuid.UUID]models.Company
	demands       map[uuid.UUID]models.Demand
	negotiations  map[uuid.UUID]models.Negotiation
	messages      map[uuid.UUID]models.Message
	notifications map[uuid.UUID]models.Notification

	// failOn заставляет операцию с таким именем вернуть ошибку.
	failOn map[string]error
	calls  []string
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[uuid.UUID]models.User{},
		companies:     map[uuid.UUID]models.Company{},
		demands:       map[uuid.UUID]models.Demand{},
		negotiations:  map[uuid.UUID]models.Negotiation{},
		messages:      map[uuid.UUID]models.Message{},
		notifications: map[uuid.UUID]models.Notification{},
		failOn:        map[string]error{},
	}
}

func (m *memStore) hit(op string) error {
	m.calls = append(m.calls, op)
	return m.failOn[op]
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *memStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	users, companies, demands := cloneMap(m.users), cloneMap(m.companies), cloneMap(m.demands)
	negotiations, messages, notifications := cloneMap(m.negotiations), cloneMap(m.messages), cloneMap(m.notifications)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.users, m.companies, m.demands = users, companies, demands
		m.negotiations, m.messages, m.notifications = negotiations, messages, notifications
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) addUser(name, email string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.users[id] = models.User{ID: id, Name: name, Email: email}
	return id
}

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("CreateUser"); err != nil {
		return err
	}
	for _, other := range m.users {
		if other.Email == u.Email {
			return models.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memStore) UpdateUserName(_ context.Context, id uuid.UUID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("UpdateUserName"); err != nil {
		return err
	}
	u, ok := m.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.Name = name
	m.users[id] = u
	return nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("GetUser"); err != nil {
		return nil, err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) CreateCompany(_ context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("CreateCompany"); err != nil {
		return err
	}
	for _, other := range m.companies {
		if other.OwnerID == c.OwnerID && other.ExternalCompanyID == c.ExternalCompanyID {
			return models.ErrDuplicate
		}
	}
	m.companies[c.ID] = *c
	return nil
}

func (m *memStore) GetCompany(_ context.Context, id uuid.UUID) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("GetCompany"); err != nil {
		return nil, err
	}
	c, ok := m.companies[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) FindCompanyByExternalID(_ context.Context, ownerID uuid.UUID, externalID string) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.companies {
		if c.OwnerID == ownerID && c.ExternalCompanyID == externalID {
			return &c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memStore) UpdateCompanyFields(_ context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("UpdateCompanyFields"); err != nil {
		return err
	}
	current, ok := m.companies[c.ID]
	if !ok || current.IsDeleted {
		return models.ErrStale
	}
	for id, other := range m.companies {
		if id != c.ID && other.OwnerID == current.OwnerID && other.ExternalCompanyID == c.ExternalCompanyID {
			return models.ErrDuplicate
		}
	}
	current.Name, current.Residence, current.Specialization = c.Name, c.Residence, c.Specialization
	current.Phone, current.ExternalCompanyID = c.Phone, c.ExternalCompanyID
	m.companies[c.ID] = current
	return nil
}

func (m *memStore) DeleteCompany(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("DeleteCompany"); err != nil {
		return err
	}
	c, ok := m.companies[id]
	if !ok || c.IsDeleted {
		return models.ErrStale
	}
	c.IsDeleted = true
	m.companies[id] = c
	return nil
}

func (m *memStore) ListCompaniesByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Company{}
	for _, c := range m.companies {
		if c.OwnerID == ownerID && !c.IsDeleted {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CreateDemand(_ context.Context, d *models.Demand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("CreateDemand"); err != nil {
		return err
	}
	m.demands[d.ID] = *d
	return nil
}

func (m *memStore) GetDemand(_ context.Context, id uuid.UUID) (*models.Demand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("GetDemand"); err != nil {
		return nil, err
	}
	d, ok := m.demands[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &d, nil
}

func (m *memStore) LockDemand(ctx context.Context, id uuid.UUID) (*models.Demand, error) {
	return m.GetDemand(ctx, id)
}

func (m *memStore) UpdateDemandFields(_ context.Context, d *models.Demand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("UpdateDemandFields"); err != nil {
		return err
	}
	current, ok := m.demands[d.ID]
	if !ok || current.Status != models.DemandOpen {
		return models.ErrStale
	}
	current.Name, current.Budget, current.Description, current.Until = d.Name, d.Budget, d.Description, d.Until
	m.demands[d.ID] = current
	return nil
}

func (m *memStore) CloseDemand(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("CloseDemand"); err != nil {
		return err
	}
	d, ok := m.demands[id]
	if !ok || d.Status != models.DemandOpen {
		return models.ErrStale
	}
	d.Status = models.DemandClosed
	m.demands[id] = d
	return nil
}

func (m *memStore) ListDemands(_ context.Context, f models.DemandFilter) ([]models.Demand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Demand{}
	for _, d := range m.demands {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.CreatorID != uuid.Nil && d.CreatorID != f.CreatorID {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Until.Before(out[j].Until) })
	return out, nil
}

func (m *memStore) ExpireDemands(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("ExpireDemands"); err != nil {
		return 0, err
	}
	var n int64
	for id, d := range m.demands {
		if d.Status == models.DemandOpen && d.Until.Before(now) {
			d.Status = models.DemandExpired
			m.demands[id] = d
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateNegotiation(_ context.Context, n *models.Negotiation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("CreateNegotiation"); err != nil {
		return err
	}
	for _, other := range m.negotiations {
		if n.Status == models.NegotiationOpen && other.Status == models.NegotiationOpen &&
			other.DemandID == n.DemandID && other.CompanyID == n.CompanyID {
			return models.ErrDuplicate
		}
	}
	m.negotiations[n.ID] = *n
	return nil
}

func (m *memStore) GetNegotiation(_ context.Context, id uuid.UUID) (*models.Negotiation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("GetNegotiation"); err != nil {
		return nil, err
	}
	n, ok := m.negotiations[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &n, nil
}

func (m *memStore) UpdateNegotiationPrice(_ context.Context, id uuid.UUID, price float64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("UpdateNegotiationPrice"); err != nil {
		return err
	}
	n, ok := m.negotiations[id]
	if !ok || n.Status != models.NegotiationOpen {
		return models.ErrStale
	}
	n.Price, n.LastChange = price, now
	m.negotiations[id] = n
	return nil
}

func (m *memStore) SetNegotiationStatus(_ context.Context, id uuid.UUID, status models.NegotiationStatus, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("SetNegotiationStatus"); err != nil {
		return err
	}
	n, ok := m.negotiations[id]
	if !ok || n.Status != models.NegotiationOpen {
		return models.ErrStale
	}
	n.Status, n.LastChange = status, now
	m.negotiations[id] = n
	return nil
}

func (m *memStore) ListNegotiations(_ context.Context, f models.NegotiationFilter) ([]models.Negotiation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Negotiation{}
	for _, n := range m.negotiations {
		if f.Status != "" && n.Status != f.Status {
			continue
		}
		if f.DemandID != uuid.Nil && n.DemandID != f.DemandID {
			continue
		}
		if f.CompanyID != uuid.Nil && n.CompanyID != f.CompanyID {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastChange.After(out[j].LastChange) })
	return out, nil
}

func (m *memStore) RejectOpenNegotiations(_ context.Context, demandID uuid.UUID, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("RejectOpenNegotiations"); err != nil {
		return 0, err
	}
	var count int64
	for id, n := range m.negotiations {
		if n.DemandID == demandID && n.Status == models.NegotiationOpen {
			n.Status = models.NegotiationRejected
			n.LastChange = now
			m.negotiations[id] = n
			count++
		}
	}
	return count, nil
}

func (m *memStore) ListNegotiationsForUser(_ context.Context, userID uuid.UUID) ([]models.Negotiation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Negotiation{}
	for _, n := range m.negotiations {
		if m.companies[n.CompanyID].OwnerID == userID || m.demands[n.DemandID].CreatorID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastChange.After(out[j].LastChange) })
	return out, nil
}

func (m *memStore) CreateMessage(_ context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("CreateMessage"); err != nil {
		return err
	}
	m.messages[msg.ID] = *msg
	return nil
}

func (m *memStore) ListMessages(_ context.Context, negotiationID uuid.UUID) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Message{}
	for _, msg := range m.messages {
		if msg.NegotiationID == negotiationID && !msg.IsDeleted {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastChange.Before(out[j].LastChange) })
	return out, nil
}

func (m *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("CreateNotification"); err != nil {
		return err
	}
	m.notifications[n.ID] = *n
	return nil
}

func (m *memStore) GetNotification(_ context.Context, id uuid.UUID) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &n, nil
}

func (m *memStore) DeleteNotification(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.notifications, id)
	return nil
}

func (m *memStore) ListNotifications(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })
	return out, nil
}

// notificationsFor возвращает описания уведомлений пользователя в любом порядке.
func (m *memStore) notificationsFor(userID uuid.UUID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n.Description)
		}
	}
	return out
}

func (m *memStore) negotiation(id uuid.UUID) models.Negotiation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.negotiations[id]
}

func (m *memStore) demand(id uuid.UUID) models.Demand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.demands[id]
}

var _ Store = (*memStore)(nil)
