package repos

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"printshop/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// productRow mirrors the products table; features/specs live as JSON text.
type productRow struct {
	domain.Product
	FeaturesJSON *string `db:"features_json"`
	SpecsJSON    *string `db:"specs_json"`
}

func (r productRow) toDomain() domain.Product {
	p := r.Product
	if r.FeaturesJSON != nil && *r.FeaturesJSON != "" {
		_ = json.Unmarshal([]byte(*r.FeaturesJSON), &p.Features)
	}
	if r.SpecsJSON != nil && *r.SpecsJSON != "" {
		_ = json.Unmarshal([]byte(*r.SpecsJSON), &p.Specs)
	}
	return p
}

const productCols = `
  id, name, description, COALESCE(image_ref,'') AS image_ref, price, rating,
  review_count, in_stock, category, features_json, specs_json, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

// List returns every active product. Callers must not rely on the ordering;
// presentation ordering is the query engine's job.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var rows []productRow
	err := r.db.Select(&rows, `SELECT `+productCols+` FROM products WHERE active = 1`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

// Upsert inserts or fully replaces a product record. Used by admin authoring
// and the feed import.
func (r *ProductRepo) Upsert(p domain.Product) error {
	features, specs, err := encodeExtras(p)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
		INSERT INTO products
		  (id,name,description,image_ref,price,rating,review_count,in_stock,category,
		   features_json,specs_json,active,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,1,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		  name=excluded.name, description=excluded.description,
		  image_ref=excluded.image_ref, price=excluded.price,
		  rating=excluded.rating, review_count=excluded.review_count,
		  in_stock=excluded.in_stock, category=excluded.category,
		  features_json=excluded.features_json, specs_json=excluded.specs_json,
		  active=1, updated_at=CURRENT_TIMESTAMP
	`, p.ID, p.Name, p.Description, p.ImageRef, p.Price, p.Rating,
		p.ReviewCount, p.InStock, p.Category, features, specs)
	return err
}

// Delete retires a product without touching orders that reference it.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`UPDATE products SET active = 0, updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	return err
}

// CountInCategory reports how many active products still reference a category.
func (r *ProductRepo) CountInCategory(category string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE category = ? AND active = 1`, category)
	return n, err
}

func encodeExtras(p domain.Product) (features, specs *string, err error) {
	if len(p.Features) > 0 {
		b, err := json.Marshal(p.Features)
		if err != nil {
			return nil, nil, err
		}
		s := string(b)
		features = &s
	}
	if len(p.Specs) > 0 {
		b, err := json.Marshal(p.Specs)
		if err != nil {
			return nil, nil, err
		}
		s := string(b)
		specs = &s
	}
	return features, specs, nil
}
