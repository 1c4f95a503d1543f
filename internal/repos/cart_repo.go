package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"printshop/internal/cart"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartItemRow struct {
	ProductID  string  `db:"product_id"`
	Name       string  `db:"name"`
	PriceAtAdd float64 `db:"price_at_add"`
	ImageRef   string  `db:"image_ref"`
	Qty        int     `db:"qty"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// Items loads the persisted line items in add order.
func (r *CartRepo) Items(cartID string) ([]cart.LineItem, error) {
	var rows []cartItemRow
	err := r.db.Select(&rows, `
	  SELECT product_id, name, price_at_add, COALESCE(image_ref,'') AS image_ref, qty
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY position
	`, cartID)
	if err != nil {
		return nil, err
	}
	out := make([]cart.LineItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, cart.LineItem{
			Snapshot: cart.Snapshot{
				ProductID: row.ProductID,
				Name:      row.Name,
				Price:     row.PriceAtAdd,
				ImageRef:  row.ImageRef,
			},
			Quantity: row.Qty,
		})
	}
	return out, nil
}

// Replace rewrites the cart's rows from the aggregator state in one tx.
func (r *CartRepo) Replace(cartID string, items []cart.LineItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	now := time.Now().Format(time.RFC3339)
	for i, it := range items {
		_, err := tx.Exec(`
			INSERT INTO cart_items(cart_id,product_id,name,price_at_add,image_ref,qty,position,created_at)
			VALUES(?,?,?,?,?,?,?,?)
		`, cartID, it.ProductID, it.Name, it.Price, it.ImageRef, it.Quantity, i, now)
		if err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`UPDATE carts SET updated_at = ? WHERE id = ?`, now, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
