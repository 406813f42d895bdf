package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
)

func CreatePublisher(ctx context.Context, db *sql.DB, name string) (*models.Publisher, error) {
	publisher := &models.Publisher{}

	err := db.QueryRowContext(ctx, `
		INSERT INTO publishers (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, name, created_at`, name).
		Scan(&publisher.ID, &publisher.Name, &publisher.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	return publisher, nil
}

func GetPublisher(ctx context.Context, db *sql.DB, id int64) (*models.Publisher, error) {
	publisher := &models.Publisher{}

	err := db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM publishers WHERE id = $1`, id).
		Scan(&publisher.ID, &publisher.Name, &publisher.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("get publisher: %w", err)
	}

	return publisher, nil
}

func ListPublishers(ctx context.Context, db *sql.DB) ([]models.Publisher, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM publishers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	defer rows.Close()

	var publishers []models.Publisher
	for rows.Next() {
		var p models.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan publisher: %w", err)
		}
		publishers = append(publishers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return publishers, nil
}

func UpdatePublisher(ctx context.Context, db *sql.DB, id int64, name string) (*models.Publisher, error) {
	publisher := &models.Publisher{}

	err := db.QueryRowContext(ctx, `
		UPDATE publishers SET name = $1 WHERE id = $2
		RETURNING id, name, created_at`, name, id).
		Scan(&publisher.ID, &publisher.Name, &publisher.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("update publisher: %w", err)
	}

	return publisher, nil
}

func DeletePublisher(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete publisher: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrPublisherNotFound
	}
	return nil
}
