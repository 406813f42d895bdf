package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
)

func CreateRating(ctx context.Context, db *sql.DB, rating *models.Rating) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO ratings (user_id, book_id, stars, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		rating.UserID, rating.BookID, rating.Stars, rating.Content).
		Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return database.ErrDuplicateRating
		}
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

func GetRating(ctx context.Context, db *sql.DB, id int64) (*models.Rating, error) {
	rating := &models.Rating{}

	err := db.QueryRowContext(ctx, `
		SELECT id, user_id, book_id, stars, content, created_at, updated_at
		FROM ratings WHERE id = $1`, id).
		Scan(&rating.ID, &rating.UserID, &rating.BookID, &rating.Stars,
			&rating.Content, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrRatingNotFound
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return rating, nil
}

// UpdateRating edits a user's own review. The (user, book) pair is
// fixed; only stars and content change.
func UpdateRating(ctx context.Context, db *sql.DB, id, userID int64, stars int, content string) (*models.Rating, error) {
	rating := &models.Rating{}

	err := db.QueryRowContext(ctx, `
		UPDATE ratings SET stars = $1, content = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, book_id, stars, content, created_at, updated_at`,
		stars, content, id, userID).
		Scan(&rating.ID, &rating.UserID, &rating.BookID, &rating.Stars,
			&rating.Content, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrRatingNotFound
		}
		return nil, fmt.Errorf("update rating: %w", err)
	}

	return rating, nil
}

// DeleteRating removes a rating; its votes go with it via the cascade
// on rating_votes. When userID is non-zero the rating must belong to
// that user (self-service path); admins pass zero.
func DeleteRating(ctx context.Context, db *sql.DB, id, userID int64) error {
	query := `DELETE FROM ratings WHERE id = $1`
	args := []interface{}{id}
	if userID > 0 {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrRatingNotFound
	}
	return nil
}

// BookRating is a review as shown on a book page.
type BookRating struct {
	models.Rating
	UserFullName string `json:"user_full_name"`
	Upvotes      int    `json:"upvotes"`
	Downvotes    int    `json:"downvotes"`
}

func ListBookRatings(ctx context.Context, db *sql.DB, bookID int64) ([]BookRating, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.book_id, r.stars, r.content, r.created_at, r.updated_at,
		       u.full_name,
		       COUNT(*) FILTER (WHERE v.vote_type = 1),
		       COUNT(*) FILTER (WHERE v.vote_type = -1)
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN rating_votes v ON v.rating_id = r.id
		WHERE r.book_id = $1
		GROUP BY r.id, u.full_name
		ORDER BY r.created_at DESC`, bookID)
	if err != nil {
		return nil, fmt.Errorf("list book ratings: %w", err)
	}
	defer rows.Close()

	var ratings []BookRating
	for rows.Next() {
		var r BookRating
		err := rows.Scan(&r.ID, &r.UserID, &r.BookID, &r.Stars, &r.Content,
			&r.CreatedAt, &r.UpdatedAt, &r.UserFullName, &r.Upvotes, &r.Downvotes)
		if err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ratings, nil
}

// AdminRating is a review denormalized for the moderation screen: vote
// counts plus reviewer and book display data.
type AdminRating struct {
	models.Rating
	UserFullName string `json:"user_full_name"`
	UserEmail    string `json:"user_email"`
	BookTitle    string `json:"book_title"`
	Upvotes      int    `json:"upvotes"`
	Downvotes    int    `json:"downvotes"`
}

// ListAllRatings fetches every rating with the display data the
// moderation filter works over. Filtering, sorting and pagination
// happen in memory on this snapshot.
func ListAllRatings(ctx context.Context, db *sql.DB) ([]AdminRating, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.book_id, r.stars, r.content, r.created_at, r.updated_at,
		       u.full_name, u.email, b.title,
		       COUNT(*) FILTER (WHERE v.vote_type = 1),
		       COUNT(*) FILTER (WHERE v.vote_type = -1)
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		JOIN books b ON b.id = r.book_id
		LEFT JOIN rating_votes v ON v.rating_id = r.id
		GROUP BY r.id, u.full_name, u.email, b.title
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all ratings: %w", err)
	}
	defer rows.Close()

	var ratings []AdminRating
	for rows.Next() {
		var r AdminRating
		err := rows.Scan(&r.ID, &r.UserID, &r.BookID, &r.Stars, &r.Content,
			&r.CreatedAt, &r.UpdatedAt, &r.UserFullName, &r.UserEmail, &r.BookTitle,
			&r.Upvotes, &r.Downvotes)
		if err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ratings, nil
}

// VoteRating applies a user's vote to someone else's rating. Voting the
// same way twice removes the vote, voting the other way flips it.
// Voting on one's own rating is rejected at this layer.
func VoteRating(ctx context.Context, db *sql.DB, ratingID, userID int64, voteType int) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var ownerID int64
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM ratings WHERE id = $1`, ratingID).Scan(&ownerID)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrRatingNotFound
			}
			return fmt.Errorf("get rating owner: %w", err)
		}
		if ownerID == userID {
			return database.ErrSelfVote
		}

		var existingID int64
		var existingType int
		err = tx.QueryRowContext(ctx, `
			SELECT id, vote_type FROM rating_votes
			WHERE rating_id = $1 AND user_id = $2`, ratingID, userID).
			Scan(&existingID, &existingType)
		switch {
		case err == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx, `
				INSERT INTO rating_votes (rating_id, user_id, vote_type)
				VALUES ($1, $2, $3)`, ratingID, userID, voteType)
			if err != nil {
				return fmt.Errorf("create vote: %w", err)
			}
		case err != nil:
			return fmt.Errorf("get existing vote: %w", err)
		case existingType == voteType:
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM rating_votes WHERE id = $1`, existingID); err != nil {
				return fmt.Errorf("remove vote: %w", err)
			}
		default:
			if _, err := tx.ExecContext(ctx,
				`UPDATE rating_votes SET vote_type = $1 WHERE id = $2`, voteType, existingID); err != nil {
				return fmt.Errorf("update vote: %w", err)
			}
		}
		return nil
	})
}

// InsertRatingVote is the plain insert used by seeding. A duplicate
// (rating, user) pair surfaces the unique violation to the caller.
func InsertRatingVote(ctx context.Context, db *sql.DB, vote *models.RatingVote) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO rating_votes (rating_id, user_id, vote_type)
		VALUES ($1, $2, $3)
		RETURNING id`,
		vote.RatingID, vote.UserID, vote.VoteType).Scan(&vote.ID)
	if err != nil {
		return fmt.Errorf("insert rating vote: %w", err)
	}
	return nil
}
