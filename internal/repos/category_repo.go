package repos

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"printshop/internal/domain"
)

var (
	ErrCategoryInUse    = errors.New("category still referenced by products")
	ErrCategoryReserved = errors.New("category name is reserved")
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT name, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) Exists(name string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE name = ?`, name); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CategoryRepo) Create(name string) error {
	if strings.EqualFold(name, domain.CategoryAll) {
		return ErrCategoryReserved
	}
	_, err := r.db.Exec(`
		INSERT INTO categories(name) VALUES(?)
		ON CONFLICT(name) DO NOTHING
	`, name)
	return err
}

// Delete removes a category unless any active product still references it.
// Retired products in the category are purged in the same transaction; they
// only exist as history and orders carry their own item snapshots, so the
// FK on products never blocks the delete.
func (r *CategoryRepo) Delete(name string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM products WHERE category = ? AND active = 1`, name); err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE category = ? AND active = 0`, name); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM categories WHERE name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}
