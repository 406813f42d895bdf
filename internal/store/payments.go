package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
)

// CreatePayment records a payment for an order. At most one payment
// exists per order; cancelled orders have none.
func CreatePayment(ctx context.Context, db *sql.DB, payment *models.Payment) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, payment_method_id, status, total, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`,
		payment.OrderID, payment.PaymentMethodID, payment.Status, payment.Total, payment.PaymentDate).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func GetPaymentByOrder(ctx context.Context, db *sql.DB, orderID int64) (*models.Payment, error) {
	payment := &models.Payment{}

	err := db.QueryRowContext(ctx, `
		SELECT id, order_id, payment_method_id, status, total, payment_date, created_at
		FROM payments WHERE order_id = $1`, orderID).
		Scan(&payment.ID, &payment.OrderID, &payment.PaymentMethodID,
			&payment.Status, &payment.Total, &payment.PaymentDate, &payment.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return payment, nil
}
