package application

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eshopexpress/backend/internal/cache"
	"github.com/eshopexpress/backend/internal/domain"
	"github.com/eshopexpress/backend/internal/domain/entity"
	repo "github.com/eshopexpress/backend/internal/domain/repository"
	"github.com/eshopexpress/backend/pkg/helpers"
	"github.com/eshopexpress/backend/pkg/mailer"
)

// OrderService owns order lookups and the financial-consistency contract for
// order creation. The full order list and per-id lookups are cached under
// the "orders" cache; every write through this service evicts it.
type OrderService struct {
	Orders repo.OrderRepository
	Cache  *cache.Store
	Mail   *helpers.RabbitPublisher
	Logger *logrus.Logger

	Now func() time.Time
}

func NewOrderService(orders repo.OrderRepository, store *cache.Store, mail *helpers.RabbitPublisher, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Cache: store, Mail: mail, Logger: logger, Now: time.Now}
}

// ListAll returns every order. The whole collection is cached under a single
// fixed key until the next write through this service evicts it.
func (s *OrderService) ListAll() ([]*entity.Order, error) {
	if v, ok := s.Cache.Get(cache.Orders, cache.AllOrdersKey); ok {
		return v.([]*entity.Order), nil
	}
	orders, err := s.Orders.FindAll()
	if err != nil {
		return nil, err
	}
	s.Cache.Put(cache.Orders, cache.AllOrdersKey, orders)
	return orders, nil
}

// FindByID returns the order or a NotFound error; individual orders are
// cached by id. A miss is never cached.
func (s *OrderService) FindByID(id int64) (*entity.Order, error) {
	key := strconv.FormatInt(id, 10)
	if v, ok := s.Cache.Get(cache.Orders, key); ok {
		return v.(*entity.Order), nil
	}
	o, err := s.Orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("Order", id)
	}
	s.Cache.Put(cache.Orders, key, o)
	return o, nil
}

func (s *OrderService) FindByCustomerID(userID int64) ([]*entity.Order, error) {
	return s.Orders.FindByCustomerID(userID)
}

func (s *OrderService) FindByFirstName(firstName string) ([]*entity.Order, error) {
	return s.Orders.FindByFirstName(firstName)
}

func (s *OrderService) FindByLastName(lastName string) ([]*entity.Order, error) {
	return s.Orders.FindByLastName(lastName)
}

func (s *OrderService) FindByEmail(email string) ([]*entity.Order, error) {
	return s.Orders.FindByEmail(email)
}

func (s *OrderService) FindByFullName(firstName, lastName string) ([]*entity.Order, error) {
	return s.Orders.FindByFullName(firstName, lastName)
}

// Create places an order: totals are derived from the line items and the
// shipping province's tax rate, the financial invariant is checked, the
// estimated delivery follows the province's shipping estimate, and the
// orders cache is evicted after the insert. A confirmation email job is
// queued best-effort.
func (s *OrderService) Create(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	now := s.Now()
	o.OrderDate = now
	if o.Status == "" {
		o.Status = entity.OrderPending
	}
	o.EstimatedDelivery = now.AddDate(0, 0, o.Province.ShippingDays())
	if len(o.Items) > 0 {
		o.ComputeTotals()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := s.Orders.Create(o); err != nil {
		return nil, err
	}
	s.Cache.EvictAll(cache.Orders)
	s.queueConfirmation(ctx, o)
	return o, nil
}

// UpdateStatus moves the order to a new status and evicts the orders cache
// so neither the per-id entry nor the list-all entry can serve the old
// status.
func (s *OrderService) UpdateStatus(id int64, status entity.OrderStatus) error {
	o, err := s.Orders.FindByID(id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.NewNotFound("Order", id)
	}
	if err := s.Orders.UpdateStatus(id, status); err != nil {
		return err
	}
	s.Cache.EvictAll(cache.Orders)
	return nil
}

func (s *OrderService) queueConfirmation(ctx context.Context, o *entity.Order) {
	if s.Mail == nil || o.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       o.Email,
		Template: mailer.OrderConfirmation,
		Data: map[string]any{
			"OrderID":           o.ID,
			"FirstName":         o.FirstName,
			"Total":             o.Total.StringFixed(2),
			"EstimatedDelivery": o.EstimatedDelivery.Format("January 2, 2006"),
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("queue confirmation email failed")
	}
}
