package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopexpress/backend/internal/cache"
	"github.com/eshopexpress/backend/internal/domain"
	"github.com/eshopexpress/backend/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeOrderRepo struct {
	orders map[int64]*entity.Order

	findAllCalls  int
	findByIDCalls int
	createCalls   int
	statusUpdates []entity.OrderStatus
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[int64]*entity.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) FindAll() ([]*entity.Order, error) {
	r.findAllCalls++
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByID(id int64) (*entity.Order, error) {
	r.findByIDCalls++
	return r.orders[id], nil
}

func (r *fakeOrderRepo) FindByCustomerID(int64) ([]*entity.Order, error)    { return nil, nil }
func (r *fakeOrderRepo) FindByFirstName(string) ([]*entity.Order, error)    { return nil, nil }
func (r *fakeOrderRepo) FindByLastName(string) ([]*entity.Order, error)     { return nil, nil }
func (r *fakeOrderRepo) FindByEmail(string) ([]*entity.Order, error)        { return nil, nil }
func (r *fakeOrderRepo) FindByFullName(_, _ string) ([]*entity.Order, error) { return nil, nil }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	r.createCalls++
	if o.ID == 0 {
		o.ID = int64(len(r.orders) + 1)
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(id int64, status entity.OrderStatus) error {
	r.statusUpdates = append(r.statusUpdates, status)
	r.orders[id].Status = status
	return nil
}

func newOrderFixture(orders ...*entity.Order) (*OrderService, *fakeOrderRepo) {
	repo := newFakeOrderRepo(orders...)
	svc := NewOrderService(repo, cache.NewStore(), nil, nil)
	return svc, repo
}

func TestOrderListAllCaches(t *testing.T) {
	svc, repo := newOrderFixture(&entity.Order{ID: 1})

	first, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ListAll()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.findAllCalls)
}

func TestOrderFindByIDCaches(t *testing.T) {
	svc, repo := newOrderFixture(&entity.Order{ID: 5})

	o, err := svc.FindByID(5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), o.ID)

	_, err = svc.FindByID(5)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findByIDCalls)
}

func TestOrderFindByIDMissing(t *testing.T) {
	svc, _ := newOrderFixture()

	_, err := svc.FindByID(404)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Order not found with id: 404", err.Error())
	// the miss is not cached
	assert.Equal(t, 0, svc.Cache.Len(cache.Orders))
}

func TestOrderCreateDerivesTotalsAndDelivery(t *testing.T) {
	svc, repo := newOrderFixture()
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	o := &entity.Order{
		UserID:   1,
		Email:    "demo@eshopexpress.ca",
		Province: entity.Ontario,
		Items: []entity.OrderItem{
			{GameID: 1, Title: "Starfall Odyssey", UnitPrice: dec("79.99"), Quantity: 1},
			{GameID: 2, Title: "Gearbound", UnitPrice: dec("29.99"), Quantity: 2},
		},
	}

	created, err := svc.Create(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, entity.OrderPending, created.Status)
	assert.Equal(t, now, created.OrderDate)
	assert.Equal(t, now.AddDate(0, 0, 5), created.EstimatedDelivery)

	// 79.99 + 2*29.99 = 139.97; ON tax 13% = 18.20
	assert.True(t, created.Subtotal.Equal(dec("139.97")), "subtotal %s", created.Subtotal)
	assert.True(t, created.Tax.Equal(dec("18.20")), "tax %s", created.Tax)
	assert.True(t, created.Total.Equal(dec("158.17")), "total %s", created.Total)
}

func TestOrderCreateTerritoryShippingEstimate(t *testing.T) {
	svc, _ := newOrderFixture()
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	o := &entity.Order{
		UserID:   1,
		Province: entity.Nunavut,
		Items:    []entity.OrderItem{{GameID: 1, UnitPrice: dec("10.00"), Quantity: 1}},
	}
	created, err := svc.Create(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 10), created.EstimatedDelivery)
}

func TestOrderCreateRejectsInconsistentTotals(t *testing.T) {
	svc, repo := newOrderFixture()

	// no line items, caller-supplied amounts must already be consistent
	o := &entity.Order{
		UserID:   1,
		Province: entity.Alberta,
		Subtotal: dec("100.00"),
		Tax:      dec("5.00"),
		Total:    dec("999.00"),
	}
	_, err := svc.Create(context.Background(), o)
	require.Error(t, err)
	assert.Equal(t, 0, repo.createCalls)
}

func TestOrderCreateEvictsOrdersCache(t *testing.T) {
	svc, repo := newOrderFixture(&entity.Order{ID: 1})

	_, err := svc.ListAll()
	require.NoError(t, err)
	require.Equal(t, 1, svc.Cache.Len(cache.Orders))

	o := &entity.Order{
		UserID:   1,
		Province: entity.Alberta,
		Items:    []entity.OrderItem{{GameID: 1, UnitPrice: dec("10.00"), Quantity: 1}},
	}
	_, err = svc.Create(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Cache.Len(cache.Orders))

	// next list goes back to the repository and sees the new order
	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, repo.findAllCalls)
}

func TestOrderUpdateStatus(t *testing.T) {
	svc, repo := newOrderFixture(&entity.Order{ID: 3, Status: entity.OrderPending})

	// warm both cache entries
	_, err := svc.ListAll()
	require.NoError(t, err)
	_, err = svc.FindByID(3)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(3, entity.OrderShipped))
	assert.Equal(t, []entity.OrderStatus{entity.OrderShipped}, repo.statusUpdates)
	assert.Equal(t, 0, svc.Cache.Len(cache.Orders))

	o, err := svc.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, o.Status)
}

func TestOrderUpdateStatusMissing(t *testing.T) {
	svc, repo := newOrderFixture()

	err := svc.UpdateStatus(8, entity.OrderCancelled)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, repo.statusUpdates)
}
