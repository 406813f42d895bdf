package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safar/go-bookstore/internal/models"
	"github.com/safar/go-bookstore/internal/store"
)

type createRatingRequest struct {
	BookID  int64  `json:"book_id" binding:"required"`
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Content string `json:"content"`
}

func (s *Server) createRating(c *gin.Context) {
	var req createRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating := &models.Rating{
		UserID:  currentUserID(c),
		BookID:  req.BookID,
		Stars:   req.Stars,
		Content: req.Content,
	}
	if err := store.CreateRating(c.Request.Context(), s.db, rating); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

type updateRatingRequest struct {
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Content string `json:"content"`
}

func (s *Server) updateRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := store.UpdateRating(c.Request.Context(), s.db, id, currentUserID(c), req.Stars, req.Content)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (s *Server) deleteOwnRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteRating(c.Request.Context(), s.db, id, currentUserID(c)); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type voteRequest struct {
	VoteType int `json:"vote_type" binding:"required,oneof=1 -1"`
}

func (s *Server) voteRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.VoteRating(c.Request.Context(), s.db, id, currentUserID(c), req.VoteType); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
