package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	UserID          int64
	CartItemIDs     []int64
	PaymentMethodID int64
	ShippingAddress string
}

// Checkout turns the selected cart items into an order. In one
// transaction it locks the books, verifies stock, snapshots unit prices
// into order items, decrements stock, removes the checked-out cart
// items and recomputes the cart total, then records a pending payment.
func Checkout(ctx context.Context, db *sql.DB, req CheckoutRequest) (*models.Order, error) {
	var orderID int64

	err := database.WithRetry(ctx, db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		var cartID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM carts WHERE user_id = $1`, req.UserID).Scan(&cartID)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrCartNotFound
			}
			return fmt.Errorf("get cart: %w", err)
		}

		type line struct {
			bookID   int64
			quantity int
			price    decimal.Decimal
		}
		var lines []line
		total := decimal.Zero

		for _, itemID := range req.CartItemIDs {
			var l line
			var stock int
			err := tx.QueryRowContext(ctx, `
				SELECT ci.book_id, ci.quantity, b.price, b.stock
				FROM cart_items ci
				JOIN books b ON b.id = ci.book_id
				WHERE ci.id = $1 AND ci.cart_id = $2
				FOR UPDATE OF b`,
				itemID, cartID).Scan(&l.bookID, &l.quantity, &l.price, &stock)
			if err != nil {
				if err == sql.ErrNoRows {
					return database.ErrCartItemNotFound
				}
				return fmt.Errorf("lock cart item %d: %w", itemID, err)
			}
			if stock < l.quantity {
				return database.ErrInsufficientStock
			}
			lines = append(lines, l)
			total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.quantity))))
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, total, status, shipping_address, order_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW(), NOW())
			RETURNING id`,
			req.UserID, total, models.OrderStatusPending, req.ShippingAddress).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, l := range lines {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, book_id, quantity, price)
				VALUES ($1, $2, $3, $4)`,
				orderID, l.bookID, l.quantity, l.price)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			result, err := tx.ExecContext(ctx, `
				UPDATE books
				SET stock = stock - $1, updated_at = NOW()
				WHERE id = $2 AND stock >= $1`,
				l.quantity, l.bookID)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("get rows affected: %w", err)
			}
			if rows == 0 {
				return database.ErrInsufficientStock
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO payments (order_id, payment_method_id, status, total, created_at)
			VALUES ($1, $2, $3, $4, NOW())`,
			orderID, req.PaymentMethodID, models.PaymentStatusPending, total)
		if err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		for _, itemID := range req.CartItemIDs {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID); err != nil {
				return fmt.Errorf("remove cart item: %w", err)
			}
		}
		return recomputeCartTotal(ctx, tx, cartID)
	})
	if err != nil {
		return nil, err
	}

	return GetOrder(ctx, db, orderID)
}

// InsertOrder persists an order together with its line items in one
// transaction, exactly as given. Used by seeding and tests, which
// construct orders with arbitrary statuses and dates.
func InsertOrder(ctx context.Context, db *sql.DB, order *models.Order) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, total, status, confirmed_by_id, shipping_address, order_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING id, created_at, updated_at`,
			order.UserID, order.Total, order.Status, order.ConfirmedByID,
			order.ShippingAddress, order.OrderDate).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			err := tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, book_id, quantity, price)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				item.OrderID, item.BookID, item.Quantity, item.Price).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
}

const orderColumns = `id, user_id, total, status, confirmed_by_id, shipping_address, order_date, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }, order *models.Order) error {
	return row.Scan(
		&order.ID,
		&order.UserID,
		&order.Total,
		&order.Status,
		&order.ConfirmedByID,
		&order.ShippingAddress,
		&order.OrderDate,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}

func GetOrder(ctx context.Context, db *sql.DB, id int64) (*models.Order, error) {
	order := &models.Order{}

	err := scanOrder(db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), order)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.book_id, oi.quantity, oi.price,
		       b.id, b.title, b.price, b.stock, b.description, b.image_url,
		       b.publisher_id, b.category_id, b.created_at, b.updated_at
		FROM order_items oi
		JOIN books b ON b.id = oi.book_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		var book models.Book
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.BookID, &item.Quantity, &item.Price,
			&book.ID, &book.Title, &book.Price, &book.Stock, &book.Description,
			&book.ImageURL, &book.PublisherID, &book.CategoryID, &book.CreatedAt, &book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.Book = &book
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	order.Items = items
	return order, nil
}

type ListOrdersRequest struct {
	// UserID limits results to one customer when non-zero.
	UserID int64
	// Status filters by order status when non-empty.
	Status   string
	Page     int
	PageSize int
}

func ListOrders(ctx context.Context, db *sql.DB, req ListOrdersRequest) (*OffsetPage, error) {
	where := `WHERE 1=1`
	args := []interface{}{}

	if req.UserID > 0 {
		args = append(args, req.UserID)
		where += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if req.Status != "" {
		args = append(args, req.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders `+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, req.PageSize, (req.Page-1)*req.PageSize)
	query := fmt.Sprintf(`
		SELECT `+orderColumns+`
		FROM orders %s
		ORDER BY order_date DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &OffsetPage{
		Items:      orders,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages(total, req.PageSize),
	}, nil
}

// legalTransitions maps each order status to the statuses it may move
// to. DELIVERED and CANCELLED are terminal.
var legalTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

func canTransition(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateOrderStatus moves an order along its lifecycle on behalf of an
// admin, recording who confirmed it. Illegal transitions, including any
// move out of a terminal status, fail with ErrInvalidTransition.
func UpdateOrderStatus(ctx context.Context, db *sql.DB, orderID, adminID int64, status string) (*models.Order, error) {
	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&current)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrOrderNotFound
			}
			return fmt.Errorf("get order status: %w", err)
		}

		if !canTransition(current, status) {
			return database.ErrInvalidTransition
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE orders
			SET status = $1,
			    confirmed_by_id = COALESCE(confirmed_by_id, $2),
			    updated_at = NOW()
			WHERE id = $3`,
			status, adminID, orderID)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		// A delivered order settles its payment; a cancelled order
		// refunds a completed one.
		switch status {
		case models.OrderStatusDelivered:
			_, err = tx.ExecContext(ctx, `
				UPDATE payments
				SET status = $1, payment_date = NOW()
				WHERE order_id = $2 AND status = $3`,
				models.PaymentStatusCompleted, orderID, models.PaymentStatusPending)
		case models.OrderStatusCancelled:
			_, err = tx.ExecContext(ctx, `
				UPDATE payments
				SET status = $1
				WHERE order_id = $2 AND status = $3`,
				models.PaymentStatusRefunded, orderID, models.PaymentStatusCompleted)
		}
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetOrder(ctx, db, orderID)
}
