package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/safar/go-bookstore/internal/models"
	"github.com/safar/go-bookstore/internal/store"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:14-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	postgres, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	host, err := postgres.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgres.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	if err := runMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
		if err := postgres.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func runMigrations(db *sql.DB) error {
	migrationDir := "../../migrations"
	files, err := os.ReadDir(migrationDir)
	if err != nil {
		return fmt.Errorf("read migration directory: %w", err)
	}

	var migrationFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".up.sql") {
			migrationFiles = append(migrationFiles, file.Name())
		}
	}

	sort.Strings(migrationFiles)

	for _, filename := range migrationFiles {
		filePath := filepath.Join(migrationDir, filename)
		content, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", filename, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", filename, err)
		}
	}

	return nil
}

func createTestUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	username := strings.SplitN(email, "@", 2)[0]
	user, err := store.CreateUser(context.Background(), db, store.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: "hashed-password",
		FullName: "Test User",
		Role:     models.RoleUser,
	})
	if err != nil {
		t.Fatalf("Create user %s: %v", email, err)
	}
	return user
}

// createTestBook makes a book with fresh publisher, category and author
// rows so each test controls its own catalog.
func createTestBook(t *testing.T, db *sql.DB, title string, price decimal.Decimal, stock int) *models.Book {
	t.Helper()
	ctx := context.Background()

	publisher, err := store.CreatePublisher(ctx, db, "Publisher for "+title)
	if err != nil {
		t.Fatalf("Create publisher: %v", err)
	}
	category, err := store.CreateCategory(ctx, db, "Category for "+title, nil)
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	author, err := store.CreateAuthor(ctx, db, "Author of "+title)
	if err != nil {
		t.Fatalf("Create author: %v", err)
	}

	book, err := store.CreateBook(ctx, db, store.CreateBookRequest{
		Title:       title,
		Price:       price,
		Stock:       stock,
		PublisherID: publisher.ID,
		CategoryID:  category.ID,
		AuthorIDs:   []int64{author.ID},
	})
	if err != nil {
		t.Fatalf("Create book %s: %v", title, err)
	}
	return book
}

func createTestPaymentMethod(t *testing.T, db *sql.DB, name string) *models.PaymentMethod {
	t.Helper()

	method, err := store.CreatePaymentMethod(context.Background(), db, name)
	if err != nil {
		t.Fatalf("Create payment method: %v", err)
	}
	return method
}

// fillCart puts the given books in the user's cart and returns the cart
// item IDs in the same order.
func fillCart(t *testing.T, db *sql.DB, userID int64, books []*models.Book, quantities []int) []int64 {
	t.Helper()
	ctx := context.Background()

	var cart *models.Cart
	var err error
	for i, book := range books {
		cart, err = store.AddCartItem(ctx, db, userID, book.ID, quantities[i])
		if err != nil {
			t.Fatalf("Add cart item for book %d: %v", book.ID, err)
		}
	}

	itemIDs := make([]int64, 0, len(books))
	for _, book := range books {
		for _, item := range cart.Items {
			if item.BookID == book.ID {
				itemIDs = append(itemIDs, item.ID)
			}
		}
	}
	return itemIDs
}
