package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eshopexpress/backend/internal/domain/entity"
	"github.com/eshopexpress/backend/internal/domain/repository"
)

const orderColumns = `id, user_id, order_date, status, subtotal, tax, total,
	first_name, last_name, email, address, city, province, postal_code,
	payment_method, estimated_delivery`

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	o := &entity.Order{}
	var status, province string
	err := row.Scan(&o.ID, &o.UserID, &o.OrderDate, &status, &o.Subtotal, &o.Tax,
		&o.Total, &o.FirstName, &o.LastName, &o.Email, &o.Address, &o.City,
		&province, &o.PostalCode, &o.PaymentMethod, &o.EstimatedDelivery)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	o.Province = entity.Province(province)
	return o, nil
}

func (r *OrderRepository) queryOrders(query string, args ...any) ([]*entity.Order, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, game_id, title, unit_price, quantity
		FROM order_items WHERE order_id = ANY($1) ORDER BY id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.GameID, &it.Title, &it.UnitPrice, &it.Quantity); err != nil {
			return err
		}
		byID[it.OrderID].Items = append(byID[it.OrderID].Items, it)
	}
	return rows.Err()
}

func (r *OrderRepository) FindAll() ([]*entity.Order, error) {
	return r.queryOrders(`SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC`)
}

func (r *OrderRepository) FindByID(id int64) (*entity.Order, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) FindByCustomerID(userID int64) ([]*entity.Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`, userID)
}

func (r *OrderRepository) FindByFirstName(firstName string) ([]*entity.Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE first_name = $1 ORDER BY order_date DESC`, firstName)
}

func (r *OrderRepository) FindByLastName(lastName string) ([]*entity.Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE last_name = $1 ORDER BY order_date DESC`, lastName)
}

func (r *OrderRepository) FindByEmail(email string) ([]*entity.Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE email = $1 ORDER BY order_date DESC`, email)
}

func (r *OrderRepository) FindByFullName(firstName, lastName string) ([]*entity.Order, error) {
	return r.queryOrders(`
		SELECT `+orderColumns+` FROM orders
		WHERE first_name = $1 AND last_name = $2
		ORDER BY order_date DESC
	`, firstName, lastName)
}

func (r *OrderRepository) Create(o *entity.Order) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_date, status, subtotal, tax, total,
			first_name, last_name, email, address, city, province, postal_code,
			payment_method, estimated_delivery)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, o.UserID, o.OrderDate, string(o.Status), o.Subtotal, o.Tax, o.Total,
		o.FirstName, o.LastName, o.Email, o.Address, o.City, string(o.Province),
		o.PostalCode, o.PaymentMethod, o.EstimatedDelivery)
	if err := row.Scan(&o.ID); err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, game_id, title, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, it.OrderID, it.GameID, it.Title, it.UnitPrice, it.Quantity).Scan(&it.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) UpdateStatus(id int64, status entity.OrderStatus) error {
	res, err := r.pool.Exec(context.Background(),
		`UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
