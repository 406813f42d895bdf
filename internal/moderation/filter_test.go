package moderation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(id int64, stars int, content string, up, down int) Review {
	return Review{
		ID:           id,
		Stars:        stars,
		Content:      content,
		UserFullName: "Reviewer",
		UserEmail:    "reviewer@email.com",
		BookTitle:    "Some Book",
		Upvotes:      up,
		Downvotes:    down,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
	}
}

func TestIsSuspicious(t *testing.T) {
	tests := []struct {
		name       string
		upvotes    int
		downvotes  int
		suspicious bool
	}{
		{"more downvotes above threshold", 1, 3, true},
		{"two downvotes meets threshold", 1, 2, true},
		{"single downvote never flags", 0, 1, false},
		{"downvotes not ahead", 2, 2, false},
		{"upvoted", 5, 1, false},
		{"no votes", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := review(1, 3, "", tt.upvotes, tt.downvotes)
			assert.Equal(t, tt.suspicious, IsSuspicious(r))
		})
	}
}

func TestApplyStatusFilters(t *testing.T) {
	keywords := NewKeywords(nil)
	reviews := []Review{
		review(1, 5, "great read", 3, 0),
		review(2, 1, "this book is fucking amazing", 0, 0),
		review(3, 2, "boring", 1, 3),
		review(4, 4, "solid", 0, 1),
	}

	suspicious := Apply(reviews, keywords, Query{Status: StatusSuspicious, Page: 1})
	require.Len(t, suspicious.Items, 1)
	assert.Equal(t, int64(3), suspicious.Items[0].ID)

	sensitive := Apply(reviews, keywords, Query{Status: StatusSensitive, Page: 1})
	require.Len(t, sensitive.Items, 1)
	assert.Equal(t, int64(2), sensitive.Items[0].ID)

	// Badge counts always reflect the whole list, whatever the filter.
	all := Apply(reviews, keywords, Query{Search: "nothing matches this", Page: 1})
	assert.Empty(t, all.Items)
	assert.Equal(t, 1, all.SuspiciousCount)
	assert.Equal(t, 1, all.SensitiveCount)
}

func TestApplyFiltersCombineAsAnd(t *testing.T) {
	keywords := NewKeywords(nil)

	var reviews []Review
	for i := int64(1); i <= 10; i++ {
		r := review(i, int(i%5)+1, fmt.Sprintf("review number %d", i), 0, 0)
		reviews = append(reviews, r)
	}
	// Only one review matches all three predicates.
	reviews[3].Content = "dragon saga, utter trash"
	reviews[3].Stars = 2
	reviews[3].Downvotes = 4
	reviews[6].Content = "dragon saga continues"
	reviews[6].Stars = 2

	page := Apply(reviews, keywords, Query{
		Search: "dragon",
		Stars:  2,
		Status: StatusSuspicious,
		Page:   1,
	})
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(4), page.Items[0].ID)
}

func TestApplySearchFields(t *testing.T) {
	keywords := NewKeywords(nil)
	reviews := []Review{
		{ID: 1, Content: "wonderful", UserFullName: "Alice Nguyen", UserEmail: "alice@email.com", BookTitle: "Dune"},
		{ID: 2, Content: "about sandworms", UserFullName: "Bob Tran", UserEmail: "bob@email.com", BookTitle: "Emma"},
	}

	for _, search := range []string{"ALICE", "dune", "alice@email"} {
		page := Apply(reviews, keywords, Query{Search: search, Page: 1})
		require.Len(t, page.Items, 1, "search %q", search)
		assert.Equal(t, int64(1), page.Items[0].ID)
	}

	page := Apply(reviews, keywords, Query{Search: "sandworms", Page: 1})
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)
}

func TestSortOrders(t *testing.T) {
	keywords := NewKeywords(nil)
	reviews := []Review{
		review(1, 3, "", 5, 1),
		review(2, 3, "", 0, 6),
		review(3, 3, "", 2, 4),
	}

	newest := Apply(reviews, keywords, Query{Sort: SortNewest, Page: 1})
	require.Len(t, newest.Items, 3)
	assert.Equal(t, int64(3), newest.Items[0].ID)
	assert.Equal(t, int64(1), newest.Items[2].ID)

	oldest := Apply(reviews, keywords, Query{Sort: SortOldest, Page: 1})
	require.Len(t, oldest.Items, 3)
	assert.Equal(t, int64(1), oldest.Items[0].ID)

	downvoted := Apply(reviews, keywords, Query{Sort: SortMostDownvoted, Page: 1})
	require.Len(t, downvoted.Items, 3)
	assert.Equal(t, int64(2), downvoted.Items[0].ID)
	assert.Equal(t, int64(3), downvoted.Items[1].ID)
	assert.Equal(t, int64(1), downvoted.Items[2].ID)
}

func TestPagination(t *testing.T) {
	keywords := NewKeywords(nil)

	var reviews []Review
	for i := int64(1); i <= 32; i++ {
		reviews = append(reviews, review(i, 4, "fine", 0, 0))
	}

	page1 := Apply(reviews, keywords, Query{Page: 1})
	assert.Len(t, page1.Items, 15)
	assert.Equal(t, 32, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)

	page2 := Apply(reviews, keywords, Query{Page: 2})
	assert.Len(t, page2.Items, 15)

	page3 := Apply(reviews, keywords, Query{Page: 3})
	assert.Len(t, page3.Items, 2)

	// Out of range pages come back empty, not as an error.
	page4 := Apply(reviews, keywords, Query{Page: 4})
	assert.Empty(t, page4.Items)
	assert.Equal(t, 32, page4.Total)
}
