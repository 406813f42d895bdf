package integration

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
	"github.com/safar/go-bookstore/internal/store"
)

func TestCheckout(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "checkout@example.com")
	book1 := createTestBook(t, db, "Checkout Book 1", decimal.NewFromInt(100), 50)
	book2 := createTestBook(t, db, "Checkout Book 2", decimal.NewFromInt(200), 30)
	method := createTestPaymentMethod(t, db, "Credit Card")

	itemIDs := fillCart(t, db, user.ID, []*models.Book{book1, book2}, []int{5, 3})

	order, err := store.Checkout(ctx, db, store.CheckoutRequest{
		UserID:          user.ID,
		CartItemIDs:     itemIDs,
		PaymentMethodID: method.ID,
		ShippingAddress: "123 Test Street",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if order.ID == 0 {
		t.Error("Order ID should not be 0")
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Expected status PENDING, got %s", order.Status)
	}

	expectedTotal := decimal.NewFromInt(100).Mul(decimal.NewFromInt(5)).
		Add(decimal.NewFromInt(200).Mul(decimal.NewFromInt(3)))
	if !order.Total.Equal(expectedTotal) {
		t.Errorf("Expected total %s, got %s", expectedTotal, order.Total)
	}

	book1After, err := store.GetBook(ctx, db, book1.ID)
	if err != nil {
		t.Fatalf("Get book 1: %v", err)
	}
	if book1After.Stock != 45 {
		t.Errorf("Expected book 1 stock 45, got %d", book1After.Stock)
	}

	book2After, err := store.GetBook(ctx, db, book2.ID)
	if err != nil {
		t.Fatalf("Get book 2: %v", err)
	}
	if book2After.Stock != 27 {
		t.Errorf("Expected book 2 stock 27, got %d", book2After.Stock)
	}

	payment, err := store.GetPaymentByOrder(ctx, db, order.ID)
	if err != nil {
		t.Fatalf("Get payment: %v", err)
	}
	if payment.Status != models.PaymentStatusPending {
		t.Errorf("Expected payment status PENDING, got %s", payment.Status)
	}
	if !payment.Total.Equal(expectedTotal) {
		t.Errorf("Expected payment total %s, got %s", expectedTotal, payment.Total)
	}

	cart, err := store.GetOrCreateCart(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("Get cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("Cart should be empty after checkout, has %d items", len(cart.Items))
	}
	if !cart.Total.IsZero() {
		t.Errorf("Cart total should be zero after checkout, got %s", cart.Total)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "stock@example.com")
	book := createTestBook(t, db, "Scarce Book", decimal.NewFromInt(100), 5)
	method := createTestPaymentMethod(t, db, "Credit Card")

	itemIDs := fillCart(t, db, user.ID, []*models.Book{book}, []int{10})

	_, err := store.Checkout(ctx, db, store.CheckoutRequest{
		UserID:          user.ID,
		CartItemIDs:     itemIDs,
		PaymentMethodID: method.ID,
		ShippingAddress: "123 Test Street",
	})
	if !errors.Is(err, database.ErrInsufficientStock) {
		t.Errorf("Expected insufficient stock error, got: %v", err)
	}

	bookAfter, err := store.GetBook(ctx, db, book.ID)
	if err != nil {
		t.Fatalf("Get book: %v", err)
	}
	if bookAfter.Stock != 5 {
		t.Errorf("Stock should remain unchanged at 5, got %d", bookAfter.Stock)
	}

	cart, err := store.GetOrCreateCart(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("Get cart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("Cart should still hold the item, has %d items", len(cart.Items))
	}
}

func TestConcurrentCheckout(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	book := createTestBook(t, db, "Contested Book", decimal.NewFromInt(100), 20)
	method := createTestPaymentMethod(t, db, "Credit Card")

	concurrency := 10
	itemIDs := make([][]int64, concurrency)
	userIDs := make([]int64, concurrency)
	for i := 0; i < concurrency; i++ {
		user := createTestUser(t, db, "concurrent"+string(rune('a'+i))+"@example.com")
		userIDs[i] = user.ID
		itemIDs[i] = fillCart(t, db, user.ID, []*models.Book{book}, []int{2})
	}

	var wg sync.WaitGroup
	results := make(chan error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, err := store.Checkout(ctx, db, store.CheckoutRequest{
				UserID:          userIDs[i],
				CartItemIDs:     itemIDs[i],
				PaymentMethodID: method.ID,
				ShippingAddress: "123 Test Street",
			})
			results <- err
		}(i)
	}

	wg.Wait()
	close(results)

	successCount := 0
	for err := range results {
		switch {
		case err == nil:
			successCount++
		case errors.Is(err, database.ErrInsufficientStock):
		default:
			t.Logf("Unexpected error: %v", err)
		}
	}

	if successCount != 10 {
		t.Errorf("Expected 10 successful checkouts, got %d", successCount)
	}

	bookAfter, err := store.GetBook(ctx, db, book.ID)
	if err != nil {
		t.Fatalf("Get book: %v", err)
	}
	expectedStock := 20 - successCount*2
	if bookAfter.Stock != expectedStock {
		t.Errorf("Expected final stock %d, got %d", expectedStock, bookAfter.Stock)
	}
}

func placeTestOrder(t *testing.T, db *sql.DB) (*models.Order, *models.User) {
	t.Helper()
	ctx := context.Background()

	user := createTestUser(t, db, "lifecycle@example.com")
	book := createTestBook(t, db, "Lifecycle Book", decimal.NewFromInt(50), 10)
	method := createTestPaymentMethod(t, db, "Credit Card")
	itemIDs := fillCart(t, db, user.ID, []*models.Book{book}, []int{1})

	order, err := store.Checkout(ctx, db, store.CheckoutRequest{
		UserID:          user.ID,
		CartItemIDs:     itemIDs,
		PaymentMethodID: method.ID,
		ShippingAddress: "123 Test Street",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	return order, user
}

func TestOrderStatusTransitions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	order, _ := placeTestOrder(t, db)
	admin := createTestUser(t, db, "admin@example.com")

	// A pending order cannot jump straight to delivered.
	_, err := store.UpdateOrderStatus(ctx, db, order.ID, admin.ID, models.OrderStatusDelivered)
	if !errors.Is(err, database.ErrInvalidTransition) {
		t.Errorf("Expected invalid transition error, got: %v", err)
	}

	for _, status := range []string{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		updated, err := store.UpdateOrderStatus(ctx, db, order.ID, admin.ID, status)
		if err != nil {
			t.Fatalf("Transition to %s: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("Expected status %s, got %s", status, updated.Status)
		}
		if updated.ConfirmedByID == nil || *updated.ConfirmedByID != admin.ID {
			t.Errorf("Expected confirmed_by_id %d after %s", admin.ID, status)
		}
	}

	// Delivery completes the pending payment.
	payment, err := store.GetPaymentByOrder(ctx, db, order.ID)
	if err != nil {
		t.Fatalf("Get payment: %v", err)
	}
	if payment.Status != models.PaymentStatusCompleted {
		t.Errorf("Expected payment COMPLETED after delivery, got %s", payment.Status)
	}
	if payment.PaymentDate == nil {
		t.Error("Expected payment date to be set after delivery")
	}

	// Delivered is terminal.
	_, err = store.UpdateOrderStatus(ctx, db, order.ID, admin.ID, models.OrderStatusCancelled)
	if !errors.Is(err, database.ErrInvalidTransition) {
		t.Errorf("Expected invalid transition from DELIVERED, got: %v", err)
	}
}

func TestCancelRefundsPayment(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	order, _ := placeTestOrder(t, db)
	admin := createTestUser(t, db, "admin2@example.com")

	if _, err := store.UpdateOrderStatus(ctx, db, order.ID, admin.ID, models.OrderStatusCancelled); err != nil {
		t.Fatalf("Cancel order: %v", err)
	}

	payment, err := store.GetPaymentByOrder(ctx, db, order.ID)
	if err != nil {
		t.Fatalf("Get payment: %v", err)
	}
	if payment.Status != models.PaymentStatusPending {
		t.Errorf("Pending payment should stay pending on cancel, got %s", payment.Status)
	}
}
