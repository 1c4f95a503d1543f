package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// every pooled connection to ":memory:" would get its own empty database
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the demo printing catalog if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure the admin account exists (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories ("All" is a reserved filter value and never stored here)
CREATE TABLE IF NOT EXISTS categories(
  name TEXT PRIMARY KEY,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  image_ref TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  review_count INTEGER NOT NULL DEFAULT 0 CHECK (review_count >= 0),
  in_stock INTEGER NOT NULL DEFAULT 1,
  category TEXT NOT NULL REFERENCES categories(name) ON DELETE RESTRICT,
  features_json TEXT,
  specs_json TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Carts (session-scoped; items carry the product snapshot captured at add time)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price_at_add NUMERIC NOT NULL,
  image_ref TEXT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  position INTEGER NOT NULL DEFAULT 0,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders (immutable snapshots; totals are never recomputed)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  customer_name TEXT,
  customer_email TEXT,
  customer_phone TEXT,
  customer_address TEXT,
  customer_city TEXT,
  customer_pincode TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','processing','completed','cancelled')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  position INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (order_id, product_id)
);

-- Users & Sessions (back-office auth)
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(name) VALUES
	  ('Invitations'),
	  ('Business'),
	  ('Banners'),
	  ('Marketing'),
	  ('Posters')`)

	tx.MustExec(`INSERT INTO products
	  (id,name,description,image_ref,price,rating,review_count,in_stock,category,features_json,specs_json) VALUES
	  ('inv-001','Wedding Invitation Cards','Elegant wedding invitation cards with custom designs',
	   'products/inv-001/main.jpg',299,4.8,127,1,'Invitations',
	   '["High-quality printing","Custom designs available","Multiple size options","Free consultation","Quality guarantee"]',
	   '{"Print Type":"Digital & Offset","Paper Quality":"Premium GSM","Turnaround Time":"2-3 business days","Minimum Order":"50 pieces","Design Support":"Included","Delivery":"Free local delivery"}'),
	  ('biz-001','Business Cards','Professional business cards with premium quality',
	   'products/biz-001/main.jpg',199,4.9,89,1,'Business',NULL,NULL),
	  ('ban-001','Banner Printing','Large format banner printing for events and advertising',
	   'products/ban-001/main.jpg',599,4.7,56,1,'Banners',NULL,NULL),
	  ('mkt-001','Brochure Design & Print','Custom brochure design and high-quality printing',
	   'products/mkt-001/main.jpg',399,4.6,73,1,'Marketing',NULL,NULL),
	  ('pos-001','Poster Printing','Vibrant poster printing for events and promotions',
	   'products/pos-001/main.jpg',149,4.5,42,1,'Posters',NULL,NULL),
	  ('biz-002','Letterhead Design','Professional letterhead design and printing',
	   'products/biz-002/main.jpg',249,4.8,31,1,'Business',NULL,NULL)`)

	return tx.Commit()
}

// seedUsers ensures the back-office admin exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES('u-admin','admin@printshop.test','Admin',?,'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, string(hash))
	return err
}
