package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safar/go-bookstore/internal/store"
)

func (s *Server) getCart(c *gin.Context) {
	cart, err := store.GetOrCreateCart(c.Request.Context(), s.db, currentUserID(c))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type addCartItemRequest struct {
	BookID   int64 `json:"book_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,min=1"`
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := store.AddCartItem(c.Request.Context(), s.db, currentUserID(c), req.BookID, req.Quantity)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (s *Server) updateCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := store.UpdateCartItemQuantity(c.Request.Context(), s.db, currentUserID(c), id, req.Quantity)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) removeCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cart, err := store.RemoveCartItem(c.Request.Context(), s.db, currentUserID(c), id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
