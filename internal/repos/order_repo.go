package repos

import (
	"github.com/jmoiron/sqlx"

	"printshop/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID        string  `db:"id"`
	SessionID string  `db:"session_id"`
	Name      string  `db:"customer_name"`
	Email     string  `db:"customer_email"`
	Phone     string  `db:"customer_phone"`
	Address   string  `db:"customer_address"`
	City      string  `db:"customer_city"`
	Pincode   string  `db:"customer_pincode"`
	Total     float64 `db:"total"`
	Status    string  `db:"status"`
	CreatedAt string  `db:"created_at"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:        r.ID,
		SessionID: r.SessionID,
		Customer: domain.Customer{
			Name: r.Name, Email: r.Email, Phone: r.Phone,
			Address: r.Address, City: r.City, Pincode: r.Pincode,
		},
		Total:     r.Total,
		Status:    domain.OrderStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

type orderItemRow struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	Qty       int     `db:"qty"`
}

const orderCols = `
  id, session_id,
  COALESCE(customer_name,'') AS customer_name,
  COALESCE(customer_email,'') AS customer_email,
  COALESCE(customer_phone,'') AS customer_phone,
  COALESCE(customer_address,'') AS customer_address,
  COALESCE(customer_city,'') AS customer_city,
  COALESCE(customer_pincode,'') AS customer_pincode,
  total, status, created_at`

// Create persists the order header and its item snapshots in one transaction.
// The order either lands whole or not at all.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
	  INSERT INTO orders
	    (id, session_id, customer_name, customer_email, customer_phone,
	     customer_address, customer_city, customer_pincode, total, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.SessionID, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Customer.Address, o.Customer.City, o.Customer.Pincode, o.Total, string(o.Status))
	if err != nil {
		return err
	}

	for i, it := range o.Items {
		_, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, price, qty, position)
		  VALUES(?,?,?,?,?,?)
		`, o.ID, it.ProductID, it.Name, it.Price, it.Qty, i)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var row orderRow
	if err := r.db.Get(&row, `SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, err
	}

	// items come back in the order the cart held them
	var items []orderItemRow
	if err := r.db.Select(&items, `
		SELECT product_id, name, price, qty
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID); err != nil {
		return domain.Order{}, err
	}

	o := row.toDomain()
	o.Items = make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
			Subtotal:  it.Price * float64(it.Qty),
		})
	}
	return o, nil
}

// ListLatest returns recent order headers (no items) for the admin console.
func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []orderRow
	err := r.db.Select(&rows, `
		SELECT `+orderCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// ListBySession returns orders placed under a given session id.
func (r *OrderRepo) ListBySession(sessionID string) ([]domain.Order, error) {
	var rows []orderRow
	err := r.db.Select(&rows, `
		SELECT `+orderCols+`
		FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// UpdateStatus moves an order to status only if it is currently in "from";
// the conditional WHERE keeps concurrent admin updates from skipping states.
func (r *OrderRepo) UpdateStatus(id string, from, to domain.OrderStatus) (bool, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func toDomainList(rows []orderRow) []domain.Order {
	out := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}
