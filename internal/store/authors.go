package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
)

func CreateAuthor(ctx context.Context, db *sql.DB, name string) (*models.Author, error) {
	author := &models.Author{}

	err := db.QueryRowContext(ctx, `
		INSERT INTO authors (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, name, created_at`, name).
		Scan(&author.ID, &author.Name, &author.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	return author, nil
}

func GetAuthor(ctx context.Context, db *sql.DB, id int64) (*models.Author, error) {
	author := &models.Author{}

	err := db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM authors WHERE id = $1`, id).
		Scan(&author.ID, &author.Name, &author.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	return author, nil
}

func ListAuthors(ctx context.Context, db *sql.DB) ([]models.Author, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM authors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
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

func UpdateAuthor(ctx context.Context, db *sql.DB, id int64, name string) (*models.Author, error) {
	author := &models.Author{}

	err := db.QueryRowContext(ctx, `
		UPDATE authors SET name = $1 WHERE id = $2
		RETURNING id, name, created_at`, name, id).
		Scan(&author.ID, &author.Name, &author.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("update author: %w", err)
	}

	return author, nil
}

func DeleteAuthor(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrAuthorNotFound
	}
	return nil
}
