package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"brocante/internal/domain"
)

// shopLimit caps any storefront listing.
const shopLimit = 50

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// Filter carries the storefront query parameters. All provided fields
// compose conjunctively; matching and ordering are delegated to the store.
type Filter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Query    string // infix, case-insensitive, against name or description
	Sort     string // newest | price-asc | price-desc
}

const productCols = `
  id, name, price, description, category, condition, dimensions,
  stock_status, images_json, created_at, COALESCE(updated_at,'') AS updated_at`

// ListAvailable returns at most 50 available products matching f.
func (r *ProductRepo) ListAvailable(f Filter) ([]domain.Product, error) {
	where := `stock_status = 'available'`
	args := []any{}
	if f.Query != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		like := "%" + strings.ToLower(f.Query) + "%"
		args = append(args, like, like)
	}
	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.MinPrice != nil {
		where += ` AND price >= ?`
		args = append(args, f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		where += ` AND price <= ?`
		args = append(args, f.MaxPrice.String())
	}

	order := `datetime(created_at) DESC`
	switch f.Sort {
	case "price-asc":
		order = `CAST(price AS REAL) ASC`
	case "price-desc":
		order = `CAST(price AS REAL) DESC`
	}

	sql := `SELECT` + productCols + ` FROM products WHERE ` + where +
		` ORDER BY ` + order + ` LIMIT ?`
	args = append(args, shopLimit)

	out := []domain.Product{}
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// ByIDs resolves a favorites set to live product records. Unknown ids are
// simply absent from the result.
func (r *ProductRepo) ByIDs(ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	query, args, err := sqlx.In(`SELECT`+productCols+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	err = r.db.Select(&out, r.db.Rebind(query), args...)
	return out, err
}

// ListAll returns every product, newest first, for the admin dashboard.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products ORDER BY datetime(created_at) DESC`)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,price,description,category,condition,dimensions,stock_status,images_json,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Price, p.Description, p.Category, p.Condition, p.Dimensions, p.StockStatus, p.ImagesJSON)
	return err
}

// Update issues a full-record overwrite with a refreshed update timestamp.
// Concurrent admin edits are last-write-wins at the row level.
func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET name=?, price=?, description=?, category=?, condition=?, dimensions=?,
	      stock_status=?, images_json=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.Name, p.Price, p.Description, p.Category, p.Condition, p.Dimensions, p.StockStatus, p.ImagesJSON, p.ID)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	return err
}

func (r *ProductRepo) SetStockStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE products SET stock_status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, status, id)
	return err
}
