package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  description TEXT NOT NULL,
  category TEXT NOT NULL,
  condition TEXT NOT NULL,
  dimensions TEXT NOT NULL DEFAULT '',
  stock_status TEXT NOT NULL DEFAULT 'available' CHECK (stock_status IN ('available','sold')),
  images_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_status     ON products(stock_status);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));

-- Orders (item snapshots embedded as JSON, frozen at order time)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  city TEXT NOT NULL,
  address TEXT NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  items_json TEXT NOT NULL,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Admin sessions (random id in an HttpOnly cookie)
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,price,description,category,condition,dimensions,stock_status,images_json) VALUES
	  ('commode-louis-xv','Commode Louis XV',1250.00,'Commode en noyer, marqueterie d''origine, ferrures en bronze.','Mobilier','Bon état','120 x 60 x 85 cm','available','["products/commode-louis-xv/main.jpg"]'),
	  ('lampe-gras-207','Lampe Gras modèle 207',480.00,'Lampe d''atelier articulée, acier nickelé, années 1930.','Luminaires','État d''usage','','available','["products/lampe-gras-207/main.jpg"]'),
	  ('vase-sevres','Vase en porcelaine de Sèvres',390.00,'Vase balustre à décor floral polychrome, fin XIXe.','Céramiques et Porcelaines','Très bon état','H 32 cm','sold','["products/vase-sevres/main.jpg"]')`)

	return tx.Commit()
}
