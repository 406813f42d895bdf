package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/safar/go-bookstore/internal/store"
)

type checkoutRequest struct {
	CartItemIDs     []int64 `json:"cart_item_ids" binding:"required,min=1"`
	PaymentMethodID int64   `json:"payment_method_id" binding:"required"`
	ShippingAddress string  `json:"shipping_address" binding:"required"`
}

func (s *Server) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	order, err := store.Checkout(c.Request.Context(), s.db, store.CheckoutRequest{
		UserID:          userID,
		CartItemIDs:     req.CartItemIDs,
		PaymentMethodID: req.PaymentMethodID,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		s.storeError(c, err)
		return
	}

	// The confirmation email is best effort. The order is already
	// committed, so a mail failure must not fail the request.
	if user, err := store.GetUser(c.Request.Context(), s.db, userID); err == nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.mailer.SendOrderConfirmation(ctx, user.Email, user.FullName, order); err != nil {
				log.Printf("order confirmation email for order %d: %v", order.ID, err)
			}
		}()
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOwnOrders(c *gin.Context) {
	page, err := store.ListOrders(c.Request.Context(), s.db, store.ListOrdersRequest{
		UserID:   currentUserID(c),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	})
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getOwnOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := store.GetOrder(c.Request.Context(), s.db, id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if order.UserID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}
