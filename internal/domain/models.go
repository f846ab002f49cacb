package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Stock status values for a product.
const (
	StockAvailable = "available"
	StockSold      = "sold"
)

// Order status values. Any status may be set from any other; admins use
// this to correct mistakes, so no transition graph is enforced.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusCompleted = "completed"
)

var OrderStatuses = []string{StatusPending, StatusConfirmed, StatusShipped, StatusCompleted}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Categories is the fixed set of shop categories.
var Categories = []string{
	"Mobilier",
	"Déco, Tableaux & Sculptures",
	"Céramiques et Porcelaines",
	"Luminaires",
	"Montres et Bijoux",
	"Livres & Imprimés Anciens",
	"Musique",
	"Jouets et Miniatures",
	"Numismatique",
	"Divers",
	"Textiles & Tapisseries",
	"Objets en Métal & Métaux Anciens",
}

func ValidCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Price       decimal.Decimal `db:"price"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Condition   string          `db:"condition"`
	Dimensions  string          `db:"dimensions"`
	StockStatus string          `db:"stock_status"`
	ImagesJSON  string          `db:"images_json"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

// Images decodes the ordered image URL list. A product needs at least one
// image before it is publishable; that rule lives at the admin form layer.
func (p Product) Images() []string {
	if p.ImagesJSON == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.ImagesJSON), &urls); err != nil {
		return nil
	}
	return urls
}

func (p *Product) SetImages(urls []string) {
	b, _ := json.Marshal(urls)
	p.ImagesJSON = string(b)
}

func (p Product) MainImage() string {
	if imgs := p.Images(); len(imgs) > 0 {
		return imgs[0]
	}
	return ""
}

func (p Product) Sold() bool { return p.StockStatus == StockSold }

// OrderItem is the frozen snapshot of a product embedded in an order at
// creation time. It never re-joins the live product record.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID        string          `db:"id"`
	FullName  string          `db:"full_name"`
	Email     string          `db:"email"`
	Phone     string          `db:"phone"`
	City      string          `db:"city"`
	Address   string          `db:"address"`
	Notes     string          `db:"notes"`
	ItemsJSON string          `db:"items_json"`
	Total     decimal.Decimal `db:"total"`
	Status    string          `db:"status"`
	CreatedAt string          `db:"created_at"`
}

func (o Order) Items() []OrderItem {
	if o.ItemsJSON == "" {
		return nil
	}
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		return nil
	}
	return items
}

func (o *Order) SetItems(items []OrderItem) {
	b, _ := json.Marshal(items)
	o.ItemsJSON = string(b)
}

// ShortID is the customer-facing order number.
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
