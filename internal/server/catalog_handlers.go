package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/safar/go-bookstore/internal/store"
)

func (s *Server) listBooks(c *gin.Context) {
	req := store.ListBooksRequest{
		Search:     c.Query("search"),
		PriceOrder: c.Query("price_order"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		req.CategoryID = id
	}

	page, err := store.ListBooks(c.Request.Context(), s.db, req)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	book, err := store.GetBook(c.Request.Context(), s.db, id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) listBookRatings(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ratings, err := store.ListBookRatings(c.Request.Context(), s.db, id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := store.ListCategories(c.Request.Context(), s.db)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) listAuthors(c *gin.Context) {
	authors, err := store.ListAuthors(c.Request.Context(), s.db)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (s *Server) listPublishers(c *gin.Context) {
	publishers, err := store.ListPublishers(c.Request.Context(), s.db)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, publishers)
}

func (s *Server) listPaymentMethods(c *gin.Context) {
	methods, err := store.ListPaymentMethods(c.Request.Context(), s.db)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

func queryInt(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
