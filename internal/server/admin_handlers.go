package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/safar/go-bookstore/internal/store"
)

func (s *Server) adminListUsers(c *gin.Context) {
	page, err := store.ListUsers(c.Request.Context(), s.db, queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) adminGetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := store.GetUser(c.Request.Context(), s.db, id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) adminUpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		FullName string  `json:"full_name" binding:"required"`
		Phone    string  `json:"phone"`
		Address  string  `json:"address"`
		Avatar   *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := store.UpdateUser(c.Request.Context(), s.db, id, store.UpdateUserRequest{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		Avatar:   req.Avatar,
	})
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) adminDeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteUser(c.Request.Context(), s.db, id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bookRequest struct {
	Title       string          `json:"title" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	PublisherID int64           `json:"publisher_id" binding:"required"`
	CategoryID  int64           `json:"category_id" binding:"required"`
	AuthorIDs   []int64         `json:"author_ids" binding:"required,min=1"`
}

func (s *Server) adminCreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := store.CreateBook(c.Request.Context(), s.db, store.CreateBookRequest{
		Title:       req.Title,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PublisherID: req.PublisherID,
		CategoryID:  req.CategoryID,
		AuthorIDs:   req.AuthorIDs,
	})
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (s *Server) adminUpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := store.UpdateBook(c.Request.Context(), s.db, id, store.UpdateBookRequest{
		Title:       req.Title,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PublisherID: req.PublisherID,
		CategoryID:  req.CategoryID,
		AuthorIDs:   req.AuthorIDs,
	})
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) adminDeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteBook(c.Request.Context(), s.db, id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) adminCreateAuthor(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := store.CreateAuthor(c.Request.Context(), s.db, req.Name)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

func (s *Server) adminUpdateAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := store.UpdateAuthor(c.Request.Context(), s.db, id, req.Name)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (s *Server) adminDeleteAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteAuthor(c.Request.Context(), s.db, id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) adminCreatePublisher(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publisher, err := store.CreatePublisher(c.Request.Context(), s.db, req.Name)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, publisher)
}

func (s *Server) adminUpdatePublisher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publisher, err := store.UpdatePublisher(c.Request.Context(), s.db, id, req.Name)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, publisher)
}

func (s *Server) adminDeletePublisher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeletePublisher(c.Request.Context(), s.db, id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type categoryRequest struct {
	Name             string `json:"name" binding:"required"`
	ParentCategoryID *int64 `json:"parent_category_id"`
}

func (s *Server) adminCreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := store.CreateCategory(c.Request.Context(), s.db, req.Name, req.ParentCategoryID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) adminUpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := store.UpdateCategory(c.Request.Context(), s.db, id, req.Name, req.ParentCategoryID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) adminDeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteCategory(c.Request.Context(), s.db, id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) adminCreatePaymentMethod(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, err := store.CreatePaymentMethod(c.Request.Context(), s.db, req.Name)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, method)
}

func (s *Server) adminUpdatePaymentMethod(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, err := store.UpdatePaymentMethod(c.Request.Context(), s.db, id, req.Name)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, method)
}

func (s *Server) adminDeletePaymentMethod(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeletePaymentMethod(c.Request.Context(), s.db, id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) adminListOrders(c *gin.Context) {
	req := store.ListOrdersRequest{
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		req.UserID = id
	}

	page, err := store.ListOrders(c.Request.Context(), s.db, req)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
}

func (s *Server) adminUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := store.UpdateOrderStatus(c.Request.Context(), s.db, id, currentUserID(c), req.Status)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) adminDeleteRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteRating(c.Request.Context(), s.db, id, 0); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
