package repos

import (
	"github.com/jmoiron/sqlx"

	"brocante/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order with its embedded item snapshot in one row.
func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders(id, full_name, email, phone, city, address, notes, items_json, total, status, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.FullName, o.Email, o.Phone, o.City, o.Address, o.Notes, o.ItemsJSON, o.Total, o.Status)
	return err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, full_name, email, phone, city, address, notes, items_json, total, status, created_at
	  FROM orders WHERE id = ?
	`, id)
	return o, err
}

// ListLatest returns all orders, newest first, for the admin back-office.
func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id, full_name, email, phone, city, address, notes, items_json, total, status, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// UpdateStatus is a single-field update; no other column is touched.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *OrderRepo) CountPending() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE status = ?`, domain.StatusPending)
	return n, err
}
