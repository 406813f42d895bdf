package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassDeadlock
	ErrorClassSerialization
)

func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassPermanent
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001":
			return ErrorClassSerialization
		case "40P01":
			return ErrorClassDeadlock
		case "55P03":
			return ErrorClassTransient
		case "23505", "23503", "23502", "23514":
			return ErrorClassPermanent
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrorClassPermanent
	}

	return ErrorClassPermanent
}

func IsRetryable(err error) bool {
	class := ClassifyError(err)
	return class == ErrorClassTransient ||
		class == ErrorClassDeadlock ||
		class == ErrorClassSerialization
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a postgres foreign key
// constraint violation (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrBookNotFound          = errors.New("book not found")
	ErrAuthorNotFound        = errors.New("author not found")
	ErrPublisherNotFound     = errors.New("publisher not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCartNotFound          = errors.New("cart not found")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrRatingNotFound        = errors.New("rating not found")
	ErrVoteNotFound          = errors.New("vote not found")
	ErrTokenNotFound         = errors.New("reset token not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrDuplicateUser         = errors.New("username or email already taken")
	ErrDuplicateRating       = errors.New("user has already rated this book")
	ErrSelfVote              = errors.New("cannot vote on your own rating")
	ErrUserHasRecords        = errors.New("user has orders or ratings and cannot be deleted")
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrTokenExpired          = errors.New("reset token has expired")
	ErrTokenUsed             = errors.New("reset token has already been used")
)
