package integration

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
	"github.com/safar/go-bookstore/internal/store"
)

func TestCreateRatingUniquePerUserAndBook(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "reviewer@example.com")
	book := createTestBook(t, db, "Reviewed Book", decimal.NewFromInt(30), 10)

	rating := &models.Rating{UserID: user.ID, BookID: book.ID, Stars: 4, Content: "Good read"}
	if err := store.CreateRating(ctx, db, rating); err != nil {
		t.Fatalf("Create rating: %v", err)
	}

	duplicate := &models.Rating{UserID: user.ID, BookID: book.ID, Stars: 5, Content: "Changed my mind"}
	err := store.CreateRating(ctx, db, duplicate)
	if !errors.Is(err, database.ErrDuplicateRating) {
		t.Errorf("Expected duplicate rating error, got: %v", err)
	}

	updated, err := store.UpdateRating(ctx, db, rating.ID, user.ID, 5, "Even better on reread")
	if err != nil {
		t.Fatalf("Update rating: %v", err)
	}
	if updated.Stars != 5 {
		t.Errorf("Expected 5 stars after update, got %d", updated.Stars)
	}
}

func TestVoteRating(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	voter := createTestUser(t, db, "voter@example.com")
	book := createTestBook(t, db, "Voted Book", decimal.NewFromInt(30), 10)

	rating := &models.Rating{UserID: author.ID, BookID: book.ID, Stars: 4}
	if err := store.CreateRating(ctx, db, rating); err != nil {
		t.Fatalf("Create rating: %v", err)
	}

	// Users cannot vote on their own reviews.
	err := store.VoteRating(ctx, db, rating.ID, author.ID, models.VoteUp)
	if !errors.Is(err, database.ErrSelfVote) {
		t.Errorf("Expected self vote error, got: %v", err)
	}

	if err := store.VoteRating(ctx, db, rating.ID, voter.ID, models.VoteUp); err != nil {
		t.Fatalf("Upvote: %v", err)
	}
	assertVotes(t, db, book.ID, rating.ID, 1, 0)

	// Opposite vote flips rather than stacks.
	if err := store.VoteRating(ctx, db, rating.ID, voter.ID, models.VoteDown); err != nil {
		t.Fatalf("Flip to downvote: %v", err)
	}
	assertVotes(t, db, book.ID, rating.ID, 0, 1)

	// Repeating the same vote withdraws it.
	if err := store.VoteRating(ctx, db, rating.ID, voter.ID, models.VoteDown); err != nil {
		t.Fatalf("Withdraw downvote: %v", err)
	}
	assertVotes(t, db, book.ID, rating.ID, 0, 0)
}

func assertVotes(t *testing.T, db *sql.DB, bookID, ratingID int64, upvotes, downvotes int) {
	t.Helper()

	ratings, err := store.ListBookRatings(context.Background(), db, bookID)
	if err != nil {
		t.Fatalf("List book ratings: %v", err)
	}
	for _, r := range ratings {
		if r.ID != ratingID {
			continue
		}
		if r.Upvotes != upvotes || r.Downvotes != downvotes {
			t.Errorf("Expected %d up / %d down, got %d up / %d down",
				upvotes, downvotes, r.Upvotes, r.Downvotes)
		}
		return
	}
	t.Fatalf("Rating %d not found for book %d", ratingID, bookID)
}

func TestDeleteRatingCascadesVotes(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	author := createTestUser(t, db, "author2@example.com")
	voter := createTestUser(t, db, "voter2@example.com")
	book := createTestBook(t, db, "Deleted Book Review", decimal.NewFromInt(30), 10)

	rating := &models.Rating{UserID: author.ID, BookID: book.ID, Stars: 2, Content: "Not for me"}
	if err := store.CreateRating(ctx, db, rating); err != nil {
		t.Fatalf("Create rating: %v", err)
	}
	if err := store.VoteRating(ctx, db, rating.ID, voter.ID, models.VoteDown); err != nil {
		t.Fatalf("Downvote: %v", err)
	}

	// Another user cannot remove the review.
	if err := store.DeleteRating(ctx, db, rating.ID, voter.ID); !errors.Is(err, database.ErrRatingNotFound) {
		t.Errorf("Expected not found for foreign delete, got: %v", err)
	}

	// Admin path removes the review and its votes.
	if err := store.DeleteRating(ctx, db, rating.ID, 0); err != nil {
		t.Fatalf("Admin delete rating: %v", err)
	}

	var voteCount int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rating_votes WHERE rating_id = $1`, rating.ID).Scan(&voteCount); err != nil {
		t.Fatalf("Count votes: %v", err)
	}
	if voteCount != 0 {
		t.Errorf("Expected votes to be removed with the rating, found %d", voteCount)
	}
}

func TestConsumeResetTokenOnce(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "reset@example.com")

	token, err := store.CreatePasswordResetToken(ctx, db, user.ID, "reset-token-123", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create reset token: %v", err)
	}

	if err := store.ConsumeResetToken(ctx, db, token.Token, "new-hash"); err != nil {
		t.Fatalf("Consume token: %v", err)
	}

	refreshed, err := store.GetUser(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("Get user: %v", err)
	}
	if refreshed.Password != "new-hash" {
		t.Errorf("Expected password to change, got %s", refreshed.Password)
	}

	// A consumed token cannot be used again.
	err = store.ConsumeResetToken(ctx, db, token.Token, "another-hash")
	if !errors.Is(err, database.ErrTokenUsed) {
		t.Errorf("Expected token used error, got: %v", err)
	}
}
