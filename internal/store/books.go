package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
	"github.com/shopspring/decimal"
)

const bookColumns = `id, title, price, stock, description, image_url, publisher_id, category_id, created_at, updated_at`

func scanBook(row interface{ Scan(...interface{}) error }, book *models.Book) error {
	return row.Scan(
		&book.ID,
		&book.Title,
		&book.Price,
		&book.Stock,
		&book.Description,
		&book.ImageURL,
		&book.PublisherID,
		&book.CategoryID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
}

type CreateBookRequest struct {
	Title       string
	Price       decimal.Decimal
	Stock       int
	Description string
	ImageURL    string
	PublisherID int64
	CategoryID  int64
	AuthorIDs   []int64
}

func CreateBook(ctx context.Context, db *sql.DB, req CreateBookRequest) (*models.Book, error) {
	book := &models.Book{}

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		query := `
			INSERT INTO books (title, price, stock, description, image_url, publisher_id, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING ` + bookColumns

		err := scanBook(tx.QueryRowContext(ctx, query,
			req.Title, req.Price, req.Stock, req.Description, req.ImageURL,
			req.PublisherID, req.CategoryID), book)
		if err != nil {
			return fmt.Errorf("create book: %w", err)
		}

		for _, authorID := range req.AuthorIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`,
				book.ID, authorID)
			if err != nil {
				return fmt.Errorf("link author %d: %w", authorID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	book.Authors, err = listBookAuthors(ctx, db, book.ID)
	if err != nil {
		return nil, err
	}

	return book, nil
}

func GetBook(ctx context.Context, db *sql.DB, id int64) (*models.Book, error) {
	book := &models.Book{}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	err := scanBook(db.QueryRowContext(ctx, query, id), book)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	book.Authors, err = listBookAuthors(ctx, db, id)
	if err != nil {
		return nil, err
	}

	return book, nil
}

func listBookAuthors(ctx context.Context, db *sql.DB, bookID int64) ([]models.Author, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT a.id, a.name, a.created_at
		FROM authors a
		JOIN book_authors ba ON ba.author_id = a.id
		WHERE ba.book_id = $1
		ORDER BY a.name`, bookID)
	if err != nil {
		return nil, fmt.Errorf("list book authors: %w", err)
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return authors, nil
}

type ListBooksRequest struct {
	Search     string
	CategoryID int64
	// PriceOrder sorts by price when "asc" or "desc"; otherwise newest first.
	PriceOrder string
	Page       int
	PageSize   int
}

func ListBooks(ctx context.Context, db *sql.DB, req ListBooksRequest) (*OffsetPage, error) {
	where := `WHERE 1=1`
	args := []interface{}{}

	if req.Search != "" {
		args = append(args, "%"+req.Search+"%")
		where += fmt.Sprintf(` AND title ILIKE $%d`, len(args))
	}
	if req.CategoryID > 0 {
		args = append(args, req.CategoryID)
		where += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}

	var total int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books `+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	orderBy := `ORDER BY created_at DESC`
	switch req.PriceOrder {
	case "asc":
		orderBy = `ORDER BY price ASC`
	case "desc":
		orderBy = `ORDER BY price DESC`
	}

	args = append(args, req.PageSize, (req.Page-1)*req.PageSize)
	query := fmt.Sprintf(`SELECT `+bookColumns+` FROM books %s %s LIMIT $%d OFFSET $%d`,
		where, orderBy, len(args)-1, len(args))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	var bookIDs []int64
	for rows.Next() {
		var book models.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
		bookIDs = append(bookIDs, book.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := attachAuthors(ctx, db, books, bookIDs); err != nil {
		return nil, err
	}

	return &OffsetPage{
		Items:      books,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages(total, req.PageSize),
	}, nil
}

func attachAuthors(ctx context.Context, db *sql.DB, books []models.Book, bookIDs []int64) error {
	if len(bookIDs) == 0 {
		return nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT ba.book_id, a.id, a.name, a.created_at
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)`, pq.Array(bookIDs))
	if err != nil {
		return fmt.Errorf("list authors for books: %w", err)
	}
	defer rows.Close()

	byBook := make(map[int64][]models.Author)
	for rows.Next() {
		var bookID int64
		var a models.Author
		if err := rows.Scan(&bookID, &a.ID, &a.Name, &a.CreatedAt); err != nil {
			return fmt.Errorf("scan author: %w", err)
		}
		byBook[bookID] = append(byBook[bookID], a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	for i := range books {
		books[i].Authors = byBook[books[i].ID]
	}
	return nil
}

type UpdateBookRequest struct {
	Title       string
	Price       decimal.Decimal
	Stock       int
	Description string
	ImageURL    string
	PublisherID int64
	CategoryID  int64
	AuthorIDs   []int64
}

func UpdateBook(ctx context.Context, db *sql.DB, id int64, req UpdateBookRequest) (*models.Book, error) {
	book := &models.Book{}

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		query := `
			UPDATE books
			SET title = $1, price = $2, stock = $3, description = $4, image_url = $5,
			    publisher_id = $6, category_id = $7, updated_at = NOW()
			WHERE id = $8
			RETURNING ` + bookColumns

		err := scanBook(tx.QueryRowContext(ctx, query,
			req.Title, req.Price, req.Stock, req.Description, req.ImageURL,
			req.PublisherID, req.CategoryID, id), book)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrBookNotFound
			}
			return fmt.Errorf("update book: %w", err)
		}

		if req.AuthorIDs != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM book_authors WHERE book_id = $1`, id); err != nil {
				return fmt.Errorf("clear author links: %w", err)
			}
			for _, authorID := range req.AuthorIDs {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`, id, authorID)
				if err != nil {
					return fmt.Errorf("link author %d: %w", authorID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	book.Authors, err = listBookAuthors(ctx, db, id)
	if err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteBook removes a book together with its author links, cart items
// and ratings. Order items are kept, so books referenced by an order
// cannot be deleted.
func DeleteBook(ctx context.Context, db *sql.DB, id int64) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		steps := []string{
			`DELETE FROM book_authors WHERE book_id = $1`,
			`DELETE FROM cart_items WHERE book_id = $1`,
			`DELETE FROM rating_votes WHERE rating_id IN (SELECT id FROM ratings WHERE book_id = $1)`,
			`DELETE FROM ratings WHERE book_id = $1`,
		}
		for _, q := range steps {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return fmt.Errorf("delete book references: %w", err)
			}
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if rows == 0 {
			return database.ErrBookNotFound
		}
		return nil
	})
}
