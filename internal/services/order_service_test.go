package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"brocante/internal/cart"
	"brocante/internal/domain"
	"brocante/internal/mail"
	"brocante/internal/repos"
)

type mailerStub struct {
	calls int
	last  mail.Notification
	fail  bool
}

func (m *mailerStub) SendOrderEmails(_ context.Context, n mail.Notification) error {
	m.calls++
	m.last = n
	if m.fail {
		return errors.New("smtp down")
	}
	return nil
}

func orderTestDeps(t *testing.T, mailer mail.Mailer) (*OrderService, *repos.OrderRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := repos.NewOrderRepo(db)
	return NewOrderService(repo, mailer), repo
}

func testCustomer() Customer {
	return Customer{
		FullName: "Marie Dupont",
		Email:    "marie@example.com",
		Phone:    "+33612345678",
		City:     "Lyon",
		Address:  "12 rue des Antiquaires",
	}
}

func testItems() []cart.Item {
	return []cart.Item{
		{ProductID: "p1", Quantity: 2, Product: &cart.Snapshot{
			ID: "p1", Name: "Commode Louis XV", Price: decimal.RequireFromString("100.00"),
		}},
		{ProductID: "p2", Quantity: 1, Product: &cart.Snapshot{
			ID: "p2", Name: "Lampe Gras", Price: decimal.RequireFromString("50.00"),
		}},
	}
}

func TestPlaceCreatesPendingOrderWithSnapshot(t *testing.T) {
	stub := &mailerStub{}
	svc, repo := orderTestDeps(t, stub)

	o, err := svc.Place(context.Background(), testCustomer(), testItems())
	if err != nil {
		t.Fatal(err)
	}
	if o.ID == "" {
		t.Fatal("expected generated order id")
	}
	if o.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", o.Status)
	}
	if !o.Total.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("expected total 250, got %s", o.Total)
	}

	stored, err := repo.Get(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	items := stored.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 snapshot items, got %+v", items)
	}
	if items[0].ProductName != "Commode Louis XV" || !items[0].Price.Equal(decimal.RequireFromString("100.00")) || items[0].Quantity != 2 {
		t.Fatalf("snapshot line wrong: %+v", items[0])
	}

	if stub.calls != 1 {
		t.Fatalf("expected one notification, got %d", stub.calls)
	}
	if stub.last.OrderNumber != o.ShortID() || stub.last.CustomerEmail != "marie@example.com" {
		t.Fatalf("notification fields wrong: %+v", stub.last)
	}
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	stub := &mailerStub{}
	svc, repo := orderTestDeps(t, stub)

	_, err := svc.Place(context.Background(), testCustomer(), nil)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if n, _ := repo.Count(); n != 0 {
		t.Fatalf("expected no orders, got %d", n)
	}
	if stub.calls != 0 {
		t.Fatal("no notification should fire for a rejected order")
	}
}

func TestPlaceSurvivesMailerFailure(t *testing.T) {
	stub := &mailerStub{fail: true}
	svc, repo := orderTestDeps(t, stub)

	o, err := svc.Place(context.Background(), testCustomer(), testItems())
	if err != nil {
		t.Fatalf("order must persist even when email fails, got %v", err)
	}
	if _, err := repo.Get(o.ID); err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected the send to have been attempted, got %d", stub.calls)
	}
}

func TestPlaceWithoutMailerConfigured(t *testing.T) {
	svc, repo := orderTestDeps(t, nil)

	o, err := svc.Place(context.Background(), testCustomer(), testItems())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(o.ID); err != nil {
		t.Fatalf("order not stored: %v", err)
	}
}

func TestPlaceUnresolvedSnapshotCountsZero(t *testing.T) {
	svc, repo := orderTestDeps(t, nil)

	items := []cart.Item{
		{ProductID: "ghost", Quantity: 3},
		{ProductID: "p1", Quantity: 1, Product: &cart.Snapshot{ID: "p1", Name: "Lampe", Price: decimal.RequireFromString("40")}},
	}
	o, err := svc.Place(context.Background(), testCustomer(), items)
	if err != nil {
		t.Fatal(err)
	}
	if !o.Total.Equal(decimal.RequireFromString("40")) {
		t.Fatalf("expected unresolved line to count zero, total %s", o.Total)
	}
	stored, _ := repo.Get(o.ID)
	if got := stored.Items(); len(got) != 2 || got[0].ProductID != "ghost" {
		t.Fatalf("unresolved line should keep its id in the snapshot: %+v", got)
	}
}

func TestSetStatusValidatesValue(t *testing.T) {
	svc, repo := orderTestDeps(t, nil)

	o, err := svc.Place(context.Background(), testCustomer(), testItems())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.SetStatus(o.ID, "lost-in-the-mail"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if err := svc.SetStatus(o.ID, domain.StatusCompleted); err != nil {
		t.Fatal(err)
	}
	// Back to pending is allowed; admins correct mistakes this way.
	if err := svc.SetStatus(o.ID, domain.StatusPending); err != nil {
		t.Fatal(err)
	}
	stored, _ := repo.Get(o.ID)
	if stored.Status != domain.StatusPending {
		t.Fatalf("expected pending after correction, got %s", stored.Status)
	}
}
