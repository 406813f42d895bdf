package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
)

func CreatePaymentMethod(ctx context.Context, db *sql.DB, name string) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{}

	err := db.QueryRowContext(ctx, `
		INSERT INTO payment_methods (name) VALUES ($1)
		RETURNING id, name`, name).
		Scan(&method.ID, &method.Name)
	if err != nil {
		return nil, fmt.Errorf("create payment method: %w", err)
	}

	return method, nil
}

func ListPaymentMethods(ctx context.Context, db *sql.DB) ([]models.PaymentMethod, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM payment_methods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	var methods []models.PaymentMethod
	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return methods, nil
}

func UpdatePaymentMethod(ctx context.Context, db *sql.DB, id int64, name string) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{}

	err := db.QueryRowContext(ctx, `
		UPDATE payment_methods SET name = $1 WHERE id = $2
		RETURNING id, name`, name, id).
		Scan(&method.ID, &method.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("update payment method: %w", err)
	}

	return method, nil
}

func DeletePaymentMethod(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrPaymentMethodNotFound
	}
	return nil
}
