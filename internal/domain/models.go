package domain

// CategoryAll is the reserved pseudo-category meaning "no category filter".
// It is never stored as a real product's category.
const CategoryAll = "All"

type Category struct {
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"-"`
	UpdatedAt string `db:"updated_at" json:"-"`
}

type Product struct {
	ID          string            `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Description string            `db:"description" json:"description"`
	ImageRef    string            `db:"image_ref" json:"image"`
	Price       float64           `db:"price" json:"price"`
	Rating      float64           `db:"rating" json:"rating"`
	ReviewCount int               `db:"review_count" json:"reviews"`
	InStock     bool              `db:"in_stock" json:"inStock"`
	Category    string            `db:"category" json:"category"`
	Features    []string          `db:"-" json:"features,omitempty"`
	Specs       map[string]string `db:"-" json:"specifications,omitempty"`
	Active      bool              `db:"active" json:"-"`
	CreatedAt   string            `db:"created_at" json:"-"`
	UpdatedAt   string            `db:"updated_at" json:"-"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | OUT_OF_STOCK
}
