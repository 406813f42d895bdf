// Package server exposes the bookstore over a JSON REST API.
package server

import (
	"database/sql"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/safar/go-bookstore/internal/auth"
	"github.com/safar/go-bookstore/internal/config"
	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/email"
	"github.com/safar/go-bookstore/internal/moderation"
)

type Server struct {
	router *gin.Engine
	db     *sql.DB
	cfg    *config.Config
	tokens *auth.TokenIssuer
	mailer email.Mailer

	// keywordMu guards keywords, which is mutated by the admin keyword
	// endpoints and read on every moderation listing.
	keywordMu    sync.Mutex
	keywords     *moderation.Keywords
	keywordStore *moderation.KeywordStore
}

// NewServer wires the router, auth and moderation state. The custom
// keyword list is loaded once here and persisted back on every change.
func NewServer(db *sql.DB, cfg *config.Config, mailer email.Mailer) (*Server, error) {
	keywordStore := moderation.NewKeywordStore(cfg.Moderation.KeywordFile)
	keywords, err := keywordStore.Load()
	if err != nil {
		return nil, err
	}

	server := &Server{
		router:       gin.Default(),
		db:           db,
		cfg:          cfg,
		tokens:       auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL),
		mailer:       mailer,
		keywords:     keywords,
		keywordStore: keywordStore,
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)

		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
		api.POST("/auth/forgot-password", s.forgotPassword)
		api.POST("/auth/reset-password", s.resetPassword)

		api.GET("/books", s.listBooks)
		api.GET("/books/:id", s.getBook)
		api.GET("/books/:id/ratings", s.listBookRatings)
		api.GET("/categories", s.listCategories)
		api.GET("/authors", s.listAuthors)
		api.GET("/publishers", s.listPublishers)
		api.GET("/payment-methods", s.listPaymentMethods)
	}

	authed := api.Group("")
	authed.Use(s.requireAuth)
	{
		authed.GET("/me", s.currentUser)
		authed.PUT("/me", s.updateProfile)
		authed.POST("/auth/change-password", s.changePassword)

		authed.GET("/cart", s.getCart)
		authed.POST("/cart/items", s.addCartItem)
		authed.PUT("/cart/items/:id", s.updateCartItem)
		authed.DELETE("/cart/items/:id", s.removeCartItem)

		authed.POST("/orders", s.checkout)
		authed.GET("/orders", s.listOwnOrders)
		authed.GET("/orders/:id", s.getOwnOrder)

		authed.POST("/ratings", s.createRating)
		authed.PUT("/ratings/:id", s.updateRating)
		authed.DELETE("/ratings/:id", s.deleteOwnRating)
		authed.POST("/ratings/:id/vote", s.voteRating)
	}

	admin := api.Group("/admin")
	admin.Use(s.requireAuth, s.requireAdmin)
	{
		admin.GET("/users", s.adminListUsers)
		admin.GET("/users/:id", s.adminGetUser)
		admin.PUT("/users/:id", s.adminUpdateUser)
		admin.DELETE("/users/:id", s.adminDeleteUser)

		admin.POST("/books", s.adminCreateBook)
		admin.PUT("/books/:id", s.adminUpdateBook)
		admin.DELETE("/books/:id", s.adminDeleteBook)

		admin.POST("/authors", s.adminCreateAuthor)
		admin.PUT("/authors/:id", s.adminUpdateAuthor)
		admin.DELETE("/authors/:id", s.adminDeleteAuthor)

		admin.POST("/publishers", s.adminCreatePublisher)
		admin.PUT("/publishers/:id", s.adminUpdatePublisher)
		admin.DELETE("/publishers/:id", s.adminDeletePublisher)

		admin.POST("/categories", s.adminCreateCategory)
		admin.PUT("/categories/:id", s.adminUpdateCategory)
		admin.DELETE("/categories/:id", s.adminDeleteCategory)

		admin.POST("/payment-methods", s.adminCreatePaymentMethod)
		admin.PUT("/payment-methods/:id", s.adminUpdatePaymentMethod)
		admin.DELETE("/payment-methods/:id", s.adminDeletePaymentMethod)

		admin.GET("/orders", s.adminListOrders)
		admin.PUT("/orders/:id/status", s.adminUpdateOrderStatus)

		admin.GET("/ratings", s.adminListRatings)
		admin.DELETE("/ratings/:id", s.adminDeleteRating)

		admin.GET("/moderation/keywords", s.adminListKeywords)
		admin.POST("/moderation/keywords", s.adminAddKeyword)
		admin.DELETE("/moderation/keywords/:keyword", s.adminRemoveKeyword)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "bookstore",
	})
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// storeError maps store sentinel errors onto HTTP statuses. Anything
// unclassified is a 500.
func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrBookNotFound),
		errors.Is(err, database.ErrAuthorNotFound),
		errors.Is(err, database.ErrPublisherNotFound),
		errors.Is(err, database.ErrCategoryNotFound),
		errors.Is(err, database.ErrCartNotFound),
		errors.Is(err, database.ErrCartItemNotFound),
		errors.Is(err, database.ErrOrderNotFound),
		errors.Is(err, database.ErrPaymentNotFound),
		errors.Is(err, database.ErrPaymentMethodNotFound),
		errors.Is(err, database.ErrRatingNotFound),
		errors.Is(err, database.ErrTokenNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrDuplicateUser),
		errors.Is(err, database.ErrDuplicateRating),
		errors.Is(err, database.ErrUserHasRecords):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrInsufficientStock),
		errors.Is(err, database.ErrInvalidTransition),
		errors.Is(err, database.ErrSelfVote),
		errors.Is(err, database.ErrTokenExpired),
		errors.Is(err, database.ErrTokenUsed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
