// Package moderation classifies, filters, sorts and paginates customer
// reviews for the admin moderation screen. Everything here is a pure
// transformation over an already-fetched snapshot; the only
// configuration state is the keyword list, passed in explicitly.
package moderation

import (
	"sort"
	"strings"
	"time"
)

// PageSize is the fixed number of reviews per moderation page.
const PageSize = 15

// Review is a rating with the denormalized display data the filter
// works over.
type Review struct {
	ID           int64     `json:"id"`
	Stars        int       `json:"stars"`
	Content      string    `json:"content"`
	UserFullName string    `json:"user_full_name"`
	UserEmail    string    `json:"user_email"`
	BookTitle    string    `json:"book_title"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
	CreatedAt    time.Time `json:"created_at"`
}

type Status string

const (
	StatusAll        Status = "all"
	StatusSuspicious Status = "suspicious"
	StatusSensitive  Status = "sensitive"
)

type Sort string

const (
	SortNewest        Sort = "newest"
	SortOldest        Sort = "oldest"
	SortMostDownvoted Sort = "most-downvoted"
)

// Query describes one moderation view: free-text search, an exact star
// filter (0 means all), a status filter, a sort key and a 1-based page.
type Query struct {
	Search string
	Stars  int
	Status Status
	Sort   Sort
	Page   int
}

// Page is one page of the filtered view, plus the full-list counts the
// screen shows as badges.
type Page struct {
	Items           []Review `json:"items"`
	Total           int      `json:"total"`
	Page            int      `json:"page"`
	PageSize        int      `json:"page_size"`
	TotalPages      int      `json:"total_pages"`
	SuspiciousCount int      `json:"suspicious_count"`
	SensitiveCount  int      `json:"sensitive_count"`
}

// IsSuspicious reports whether a review's vote ratio marks it for
// attention: more downvotes than upvotes, and at least two downvotes.
// A single downvote never flags a review.
func IsSuspicious(r Review) bool {
	return r.Downvotes > r.Upvotes && r.Downvotes >= 2
}

// Apply runs the full pipeline: search, star and status filters as
// AND-combined predicates, then sort, then pagination.
func Apply(reviews []Review, keywords *Keywords, q Query) Page {
	result := make([]Review, 0, len(reviews))

	search := strings.ToLower(q.Search)
	for _, r := range reviews {
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		if q.Stars != 0 && r.Stars != q.Stars {
			continue
		}
		switch q.Status {
		case StatusSuspicious:
			if !IsSuspicious(r) {
				continue
			}
		case StatusSensitive:
			if !keywords.IsSensitive(r.Content) {
				continue
			}
		}
		result = append(result, r)
	}

	sortReviews(result, q.Sort)

	page := Page{
		Items:      []Review{},
		Total:      len(result),
		Page:       q.Page,
		PageSize:   PageSize,
		TotalPages: (len(result) + PageSize - 1) / PageSize,
	}
	for _, r := range reviews {
		if IsSuspicious(r) {
			page.SuspiciousCount++
		}
		if keywords.IsSensitive(r.Content) {
			page.SensitiveCount++
		}
	}

	start := (q.Page - 1) * PageSize
	if start >= 0 && start < len(result) {
		end := start + PageSize
		if end > len(result) {
			end = len(result)
		}
		page.Items = result[start:end]
	}
	return page
}

// matchesSearch is a case-insensitive substring match OR-ed across
// content, reviewer name, reviewer email and book title.
func matchesSearch(r Review, search string) bool {
	return strings.Contains(strings.ToLower(r.Content), search) ||
		strings.Contains(strings.ToLower(r.UserFullName), search) ||
		strings.Contains(strings.ToLower(r.UserEmail), search) ||
		strings.Contains(strings.ToLower(r.BookTitle), search)
}

func sortReviews(reviews []Review, key Sort) {
	switch key {
	case SortOldest:
		sort.Slice(reviews, func(i, j int) bool {
			return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
		})
	case SortMostDownvoted:
		// Ties are left in whatever order the sort produces.
		sort.Slice(reviews, func(i, j int) bool {
			return reviews[i].Downvotes-reviews[i].Upvotes >
				reviews[j].Downvotes-reviews[j].Upvotes
		})
	default:
		sort.Slice(reviews, func(i, j int) bool {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		})
	}
}
