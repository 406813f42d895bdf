package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Avatar    *string   `json:"avatar,omitempty"`
	GoogleID  *string   `json:"google_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is a node in the category tree. Root categories have a nil
// ParentCategoryID; the tree never contains cycles.
type Category struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	ParentCategoryID *int64    `json:"parent_category_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	PublisherID int64           `json:"publisher_id"`
	CategoryID  int64           `json:"category_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Authors     []Author        `json:"authors,omitempty"`
}

type BookAuthor struct {
	BookID   int64 `json:"book_id"`
	AuthorID int64 `json:"author_id"`
}

// Cart.Total is a cached sum of item price x quantity. It is not a
// database constraint; every cart mutation must recompute it.
type Cart struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Items     []CartItem      `json:"items,omitempty"`
}

type CartItem struct {
	ID       int64 `json:"id"`
	CartID   int64 `json:"cart_id"`
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
	Book     *Book `json:"book,omitempty"`
}

type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	ConfirmedByID   *int64          `json:"confirmed_by_id,omitempty"`
	ShippingAddress string          `json:"shipping_address"`
	OrderDate       time.Time       `json:"order_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"items,omitempty"`
}

const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// OrderStatuses lists every order status in lifecycle order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderItem.Price is the unit price snapshotted at purchase time. It is
// immutable and independent of the current Book.Price.
type OrderItem struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"order_id"`
	BookID   int64           `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Book     *Book           `json:"book,omitempty"`
}

type Payment struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	PaymentMethodID int64           `json:"payment_method_id"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusRefunded  = "REFUNDED"
)

type PaymentMethod struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Rating is unique per (UserID, BookID).
type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	Stars     int       `json:"stars"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RatingVote struct {
	ID       int64 `json:"id"`
	RatingID int64 `json:"rating_id"`
	UserID   int64 `json:"user_id"`
	VoteType int   `json:"vote_type"`
}

const (
	VoteUp   = 1
	VoteDown = -1
)

type PasswordResetToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	Used      bool      `json:"used"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
