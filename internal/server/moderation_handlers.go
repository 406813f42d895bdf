package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/safar/go-bookstore/internal/moderation"
	"github.com/safar/go-bookstore/internal/store"
)

// adminListRatings fetches the full review snapshot and runs the
// moderation pipeline over it: search, star and status filters, sort,
// fixed-size pagination, plus badge counts over the whole list.
func (s *Server) adminListRatings(c *gin.Context) {
	ratings, err := store.ListAllRatings(c.Request.Context(), s.db)
	if err != nil {
		s.storeError(c, err)
		return
	}

	reviews := make([]moderation.Review, len(ratings))
	for i, r := range ratings {
		reviews[i] = moderation.Review{
			ID:           r.ID,
			Stars:        r.Stars,
			Content:      r.Content,
			UserFullName: r.UserFullName,
			UserEmail:    r.UserEmail,
			BookTitle:    r.BookTitle,
			Upvotes:      r.Upvotes,
			Downvotes:    r.Downvotes,
			CreatedAt:    r.CreatedAt,
		}
	}

	query := moderation.Query{
		Search: c.Query("search"),
		Status: moderation.Status(c.DefaultQuery("status", string(moderation.StatusAll))),
		Sort:   moderation.Sort(c.DefaultQuery("sort", string(moderation.SortNewest))),
		Page:   queryInt(c, "page", 1),
	}
	if raw := c.Query("stars"); raw != "" {
		stars, err := strconv.Atoi(raw)
		if err != nil || stars < 1 || stars > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stars"})
			return
		}
		query.Stars = stars
	}

	s.keywordMu.Lock()
	page := moderation.Apply(reviews, s.keywords, query)
	s.keywordMu.Unlock()

	c.JSON(http.StatusOK, page)
}

func (s *Server) adminListKeywords(c *gin.Context) {
	s.keywordMu.Lock()
	defer s.keywordMu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"keywords": s.keywords.All(),
		"custom":   s.keywords.Custom(),
	})
}

type keywordRequest struct {
	Keyword string `json:"keyword" binding:"required"`
}

func (s *Server) adminAddKeyword(c *gin.Context) {
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.keywordMu.Lock()
	defer s.keywordMu.Unlock()

	if !s.keywords.Add(req.Keyword) {
		c.JSON(http.StatusOK, gin.H{"custom": s.keywords.Custom()})
		return
	}
	if err := s.keywordStore.Save(s.keywords); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist keywords"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"custom": s.keywords.Custom()})
}

func (s *Server) adminRemoveKeyword(c *gin.Context) {
	keyword := c.Param("keyword")

	s.keywordMu.Lock()
	defer s.keywordMu.Unlock()

	if !s.keywords.Remove(keyword) {
		c.JSON(http.StatusNotFound, gin.H{"error": "keyword not found"})
		return
	}
	if err := s.keywordStore.Save(s.keywords); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist keywords"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"custom": s.keywords.Custom()})
}
