package integration

import (
	"context"
	"testing"

	"github.com/safar/go-bookstore/internal/models"
	"github.com/safar/go-bookstore/internal/seed"
)

func TestSeedProducesConsistentData(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	cfg := seed.Config{
		NumUsers:         10,
		NumOrders:        40,
		MaxItemsPerOrder: 3,
		NumRatings:       60,
		Password:         "password123",
	}

	summary, err := seed.Run(ctx, db, cfg)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if summary.Users != cfg.NumUsers+1 {
		t.Errorf("Expected %d users including admin, got %d", cfg.NumUsers+1, summary.Users)
	}
	if summary.Orders != cfg.NumOrders {
		t.Errorf("Expected %d orders, got %d", cfg.NumOrders, summary.Orders)
	}
	if summary.Books == 0 || summary.Categories == 0 || summary.Ratings == 0 {
		t.Errorf("Expected non-empty catalog and ratings, got %+v", summary)
	}

	// The admin account always exists.
	var adminRole string
	err = db.QueryRowContext(ctx,
		`SELECT role FROM users WHERE email = 'admin@bookstore.com'`).Scan(&adminRole)
	if err != nil {
		t.Fatalf("Get admin user: %v", err)
	}
	if adminRole != models.RoleAdmin {
		t.Errorf("Expected admin role, got %s", adminRole)
	}

	// Every cached cart total matches the sum of its line items.
	var badCarts int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM carts c
		WHERE c.total <> COALESCE((
			SELECT SUM(b.price * ci.quantity)
			FROM cart_items ci JOIN books b ON b.id = ci.book_id
			WHERE ci.cart_id = c.id), 0)`).Scan(&badCarts)
	if err != nil {
		t.Fatalf("Check cart totals: %v", err)
	}
	if badCarts != 0 {
		t.Errorf("Found %d carts whose total does not match their items", badCarts)
	}

	// Every order total matches the sum of its snapshotted line items.
	var badOrders int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders o
		WHERE o.total <> (
			SELECT SUM(oi.price * oi.quantity)
			FROM order_items oi WHERE oi.order_id = o.id)`).Scan(&badOrders)
	if err != nil {
		t.Fatalf("Check order totals: %v", err)
	}
	if badOrders != 0 {
		t.Errorf("Found %d orders whose total does not match their items", badOrders)
	}

	// Cancelled orders never carry a payment; all other orders do.
	var cancelledWithPayment int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders o
		JOIN payments p ON p.order_id = o.id
		WHERE o.status = 'CANCELLED'`).Scan(&cancelledWithPayment)
	if err != nil {
		t.Fatalf("Check cancelled payments: %v", err)
	}
	if cancelledWithPayment != 0 {
		t.Errorf("Found %d cancelled orders with a payment", cancelledWithPayment)
	}

	var unpaid int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders o
		WHERE o.status <> 'CANCELLED'
		AND NOT EXISTS (SELECT 1 FROM payments p WHERE p.order_id = o.id)`).Scan(&unpaid)
	if err != nil {
		t.Fatalf("Check missing payments: %v", err)
	}
	if unpaid != 0 {
		t.Errorf("Found %d non-cancelled orders without a payment", unpaid)
	}

	// Delivered orders always have a completed payment.
	var deliveredIncomplete int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders o
		JOIN payments p ON p.order_id = o.id
		WHERE o.status = 'DELIVERED' AND p.status <> 'COMPLETED'`).Scan(&deliveredIncomplete)
	if err != nil {
		t.Fatalf("Check delivered payments: %v", err)
	}
	if deliveredIncomplete != 0 {
		t.Errorf("Found %d delivered orders without a completed payment", deliveredIncomplete)
	}

	// Nobody votes on their own review.
	var selfVotes int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM rating_votes v
		JOIN ratings r ON r.id = v.rating_id
		WHERE r.user_id = v.user_id`).Scan(&selfVotes)
	if err != nil {
		t.Fatalf("Check self votes: %v", err)
	}
	if selfVotes != 0 {
		t.Errorf("Found %d self votes", selfVotes)
	}

	// Confirmed statuses always record which admin confirmed them.
	var unconfirmed int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE status IN ('PROCESSING', 'SHIPPED', 'DELIVERED')
		AND confirmed_by_id IS NULL`).Scan(&unconfirmed)
	if err != nil {
		t.Fatalf("Check confirmations: %v", err)
	}
	if unconfirmed != 0 {
		t.Errorf("Found %d confirmed orders without confirmed_by_id", unconfirmed)
	}
}

func TestSeedIsRepeatable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	cfg := seed.Config{
		NumUsers:         5,
		NumOrders:        10,
		MaxItemsPerOrder: 2,
		NumRatings:       15,
		Password:         "password123",
	}

	if _, err := seed.Run(ctx, db, cfg); err != nil {
		t.Fatalf("First seed: %v", err)
	}

	// A second run wipes everything and starts over.
	summary, err := seed.Run(ctx, db, cfg)
	if err != nil {
		t.Fatalf("Second seed: %v", err)
	}

	var userCount int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		t.Fatalf("Count users: %v", err)
	}
	if userCount != summary.Users {
		t.Errorf("Expected %d users after reseed, got %d", summary.Users, userCount)
	}
}
