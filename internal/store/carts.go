package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
)

// GetOrCreateCart returns the user's cart, creating an empty one on
// first use. Each user has at most one cart.
func GetOrCreateCart(ctx context.Context, db *sql.DB, userID int64) (*models.Cart, error) {
	cart := &models.Cart{}

	err := db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, total, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
		RETURNING id, user_id, total, created_at, updated_at`, userID).
		Scan(&cart.ID, &cart.UserID, &cart.Total, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	cart.Items, err = listCartItems(ctx, db, cart.ID)
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func listCartItems(ctx context.Context, db *sql.DB, cartID int64) ([]models.CartItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.book_id, ci.quantity,
		       b.id, b.title, b.price, b.stock, b.description, b.image_url,
		       b.publisher_id, b.category_id, b.created_at, b.updated_at
		FROM cart_items ci
		JOIN books b ON b.id = ci.book_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		var book models.Book
		err := rows.Scan(
			&item.ID, &item.CartID, &item.BookID, &item.Quantity,
			&book.ID, &book.Title, &book.Price, &book.Stock, &book.Description,
			&book.ImageURL, &book.PublisherID, &book.CategoryID, &book.CreatedAt, &book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		item.Book = &book
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

// AddCartItem adds a book to the user's cart, bumping the quantity if
// the book is already there, then recomputes the cached total.
func AddCartItem(ctx context.Context, db *sql.DB, userID, bookID int64, quantity int) (*models.Cart, error) {
	cart, err := GetOrCreateCart(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	err = database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists); err != nil {
			return fmt.Errorf("check book exists: %w", err)
		}
		if !exists {
			return database.ErrBookNotFound
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (cart_id, book_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (cart_id, book_id)
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
			cart.ID, bookID, quantity)
		if err != nil {
			return fmt.Errorf("add cart item: %w", err)
		}

		return recomputeCartTotal(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return GetOrCreateCart(ctx, db, userID)
}

func UpdateCartItemQuantity(ctx context.Context, db *sql.DB, userID, itemID int64, quantity int) (*models.Cart, error) {
	cart, err := GetOrCreateCart(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	err = database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE cart_items SET quantity = $1 WHERE id = $2 AND cart_id = $3`,
			quantity, itemID, cart.ID)
		if err != nil {
			return fmt.Errorf("update cart item: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if rows == 0 {
			return database.ErrCartItemNotFound
		}

		return recomputeCartTotal(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return GetOrCreateCart(ctx, db, userID)
}

func RemoveCartItem(ctx context.Context, db *sql.DB, userID, itemID int64) (*models.Cart, error) {
	cart, err := GetOrCreateCart(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	err = database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cart.ID)
		if err != nil {
			return fmt.Errorf("remove cart item: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if rows == 0 {
			return database.ErrCartItemNotFound
		}

		return recomputeCartTotal(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return GetOrCreateCart(ctx, db, userID)
}

// InsertCart persists a cart with its items and total exactly as
// given, in one transaction. Used by seeding, which computes the total
// from the prices it assigned in the same pass.
func InsertCart(ctx context.Context, db *sql.DB, cart *models.Cart) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO carts (user_id, total, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			RETURNING id, created_at, updated_at`,
			cart.UserID, cart.Total).
			Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert cart: %w", err)
		}

		for i := range cart.Items {
			item := &cart.Items[i]
			item.CartID = cart.ID
			err := tx.QueryRowContext(ctx, `
				INSERT INTO cart_items (cart_id, book_id, quantity)
				VALUES ($1, $2, $3)
				RETURNING id`,
				item.CartID, item.BookID, item.Quantity).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("insert cart item: %w", err)
			}
		}
		return nil
	})
}

// recomputeCartTotal refreshes the cached cart total from current book
// prices. Must run inside every transaction that changes cart items.
func recomputeCartTotal(ctx context.Context, tx *sql.Tx, cartID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET total = COALESCE((
			SELECT SUM(b.price * ci.quantity)
			FROM cart_items ci
			JOIN books b ON b.id = ci.book_id
			WHERE ci.cart_id = $1
		), 0),
		updated_at = NOW()
		WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("recompute cart total: %w", err)
	}
	return nil
}
