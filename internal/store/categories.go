package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
)

func CreateCategory(ctx context.Context, db *sql.DB, name string, parentID *int64) (*models.Category, error) {
	category := &models.Category{}

	err := db.QueryRowContext(ctx, `
		INSERT INTO categories (name, parent_category_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, name, parent_category_id, created_at`, name, parentID).
		Scan(&category.ID, &category.Name, &category.ParentCategoryID, &category.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func GetCategory(ctx context.Context, db *sql.DB, id int64) (*models.Category, error) {
	category := &models.Category{}

	err := db.QueryRowContext(ctx, `
		SELECT id, name, parent_category_id, created_at
		FROM categories WHERE id = $1`, id).
		Scan(&category.ID, &category.Name, &category.ParentCategoryID, &category.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

// ListCategories returns all categories, roots before children.
func ListCategories(ctx context.Context, db *sql.DB) ([]models.Category, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, parent_category_id, created_at
		FROM categories
		ORDER BY parent_category_id NULLS FIRST, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentCategoryID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames a category or moves it under a new parent. A
// category may not become its own parent; deeper cycles are prevented
// by only allowing root categories as parents.
func UpdateCategory(ctx context.Context, db *sql.DB, id int64, name string, parentID *int64) (*models.Category, error) {
	if parentID != nil {
		if *parentID == id {
			return nil, fmt.Errorf("category cannot be its own parent")
		}
		parent, err := GetCategory(ctx, db, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentCategoryID != nil {
			return nil, fmt.Errorf("parent category must be a root category")
		}
	}

	category := &models.Category{}
	err := db.QueryRowContext(ctx, `
		UPDATE categories SET name = $1, parent_category_id = $2 WHERE id = $3
		RETURNING id, name, parent_category_id, created_at`, name, parentID, id).
		Scan(&category.ID, &category.Name, &category.ParentCategoryID, &category.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

func DeleteCategory(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrCategoryNotFound
	}
	return nil
}
