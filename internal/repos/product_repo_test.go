package repos

import (
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"brocante/internal/domain"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// blank wipes the seeded demo catalog so filter tests see only their own rows.
func blank(t *testing.T) *sqlx.DB {
	t.Helper()
	db := memdb(t)
	if _, err := db.Exec(`DELETE FROM products`); err != nil {
		t.Fatalf("wipe products: %v", err)
	}
	return db
}

func insertProduct(t *testing.T, db *sqlx.DB, id, name, price, category, status string) {
	t.Helper()
	_, err := db.Exec(`
	  INSERT INTO products(id,name,price,description,category,condition,stock_status,images_json)
	  VALUES(?,?,?,?,?,?,?,'["x.jpg"]')
	`, id, name, price, "desc for "+name, category, "Bon état", status)
	if err != nil {
		t.Fatalf("insert %s: %v", id, err)
	}
}

func TestListAvailableExcludesSold(t *testing.T) {
	db := blank(t)
	repo := NewProductRepo(db)
	insertProduct(t, db, "a", "Miroir doré", "120", "Mobilier", "available")
	insertProduct(t, db, "b", "Miroir ancien", "90", "Mobilier", "sold")

	got, err := repo.ListAvailable(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only available product, got %+v", got)
	}
}

func TestListAvailableQueryIsInfixCaseInsensitive(t *testing.T) {
	db := blank(t)
	repo := NewProductRepo(db)
	insertProduct(t, db, "a", "Commode Louis XV", "800", "Mobilier", "available")
	insertProduct(t, db, "b", "Lampe Gras", "480", "Luminaires", "available")

	got, err := repo.ListAvailable(Filter{Query: "LOUIS"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected name match, got %+v", got)
	}

	// Description matches too.
	got, err = repo.ListAvailable(Filter{Query: "desc for lampe"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected description match, got %+v", got)
	}
}

func TestListAvailableFiltersCompose(t *testing.T) {
	db := blank(t)
	repo := NewProductRepo(db)
	insertProduct(t, db, "a", "Commode", "800", "Mobilier", "available")
	insertProduct(t, db, "b", "Fauteuil", "300", "Mobilier", "available")
	insertProduct(t, db, "c", "Lampe", "300", "Luminaires", "available")

	min := decimal.RequireFromString("250")
	max := decimal.RequireFromString("500")
	got, err := repo.ListAvailable(Filter{Category: "Mobilier", MinPrice: &min, MaxPrice: &max})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected conjunctive match on b, got %+v", got)
	}
}

func TestListAvailableSortsByPrice(t *testing.T) {
	db := blank(t)
	repo := NewProductRepo(db)
	insertProduct(t, db, "a", "Cher", "900", "Divers", "available")
	insertProduct(t, db, "b", "Moyen", "500", "Divers", "available")
	insertProduct(t, db, "c", "Abordable", "100", "Divers", "available")

	asc, err := repo.ListAvailable(Filter{Sort: "price-asc"})
	if err != nil {
		t.Fatal(err)
	}
	if asc[0].ID != "c" || asc[2].ID != "a" {
		t.Fatalf("price-asc order wrong: %+v", asc)
	}

	desc, err := repo.ListAvailable(Filter{Sort: "price-desc"})
	if err != nil {
		t.Fatal(err)
	}
	if desc[0].ID != "a" || desc[2].ID != "c" {
		t.Fatalf("price-desc order wrong: %+v", desc)
	}
}

func TestListAvailableCapsAtFifty(t *testing.T) {
	db := blank(t)
	repo := NewProductRepo(db)
	for i := 0; i < 55; i++ {
		insertProduct(t, db, fmt.Sprintf("p%02d", i), fmt.Sprintf("Objet %02d", i), "10", "Divers", "available")
	}
	got, err := repo.ListAvailable(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 50 {
		t.Fatalf("expected 50 rows, got %d", len(got))
	}
}

func TestCreateGetUpdateDelete(t *testing.T) {
	db := blank(t)
	repo := NewProductRepo(db)

	p := domain.Product{
		ID:          "vase-1",
		Name:        "Vase balustre",
		Price:       decimal.RequireFromString("390.00"),
		Description: "Porcelaine fin XIXe",
		Category:    "Céramiques et Porcelaines",
		Condition:   "Très bon état",
		Dimensions:  "H 32 cm",
		StockStatus: domain.StockAvailable,
	}
	p.SetImages([]string{"products/vase-1/main.jpg", "products/vase-1/side.jpg"})
	if err := repo.Create(p); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get("vase-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != p.Name || !got.Price.Equal(p.Price) || got.Category != p.Category {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if imgs := got.Images(); len(imgs) != 2 || imgs[0] != "products/vase-1/main.jpg" {
		t.Fatalf("images lost: %v", imgs)
	}
	if got.CreatedAt == "" {
		t.Fatal("created_at not set")
	}

	p.Name = "Vase balustre Sèvres"
	p.Price = decimal.RequireFromString("420.00")
	if err := repo.Update(p); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.Get("vase-1")
	if got.Name != "Vase balustre Sèvres" || !got.Price.Equal(decimal.RequireFromString("420.00")) {
		t.Fatalf("update not reflected: %+v", got)
	}
	if got.UpdatedAt == "" {
		t.Fatal("updated_at not set on update")
	}

	if err := repo.Delete("vase-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get("vase-1"); err == nil {
		t.Fatal("expected error reading deleted product")
	}
}

func TestSetStockStatus(t *testing.T) {
	db := blank(t)
	repo := NewProductRepo(db)
	insertProduct(t, db, "a", "Commode", "800", "Mobilier", "available")

	if err := repo.SetStockStatus("a", domain.StockSold); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.Get("a")
	if !got.Sold() {
		t.Fatalf("expected sold, got %s", got.StockStatus)
	}
}

func TestByIDsSkipsUnknown(t *testing.T) {
	db := blank(t)
	repo := NewProductRepo(db)
	insertProduct(t, db, "a", "Commode", "800", "Mobilier", "available")
	insertProduct(t, db, "b", "Lampe", "480", "Luminaires", "sold")

	got, err := repo.ByIDs([]string{"a", "missing", "b"})
	if err != nil {
		t.Fatal(err)
	}
	// Sold products still resolve; favorites show them with a badge.
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %+v", got)
	}

	empty, err := repo.ByIDs(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result for no ids, got %v %v", empty, err)
	}
}

func TestSeedRunsOnceOnEmptyDB(t *testing.T) {
	db := memdb(t)
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("expected demo products seeded into an empty db")
	}
}
