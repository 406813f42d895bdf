// Package seed populates an empty datastore with a consistent,
// referentially valid synthetic dataset for development and testing.
//
// All writes follow the declared entity dependency order: existing data
// is removed leaves-first, new data is created roots-first, so no
// statement ever references a row that does not exist yet.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/safar/go-bookstore/internal/auth"
	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
	"github.com/safar/go-bookstore/internal/store"
	"github.com/shopspring/decimal"
)

type Config struct {
	NumUsers         int
	NumOrders        int
	MaxItemsPerOrder int
	NumRatings       int
	// Password is the shared plaintext credential for every generated
	// account, hashed once up front.
	Password string
}

func DefaultConfig() Config {
	return Config{
		NumUsers:         50,
		NumOrders:        500,
		MaxItemsPerOrder: 4,
		NumRatings:       800,
		Password:         "password123",
	}
}

// Summary reports how many rows of each kind a run created.
type Summary struct {
	PaymentMethods int
	Publishers     int
	Authors        int
	Categories     int
	Users          int
	Books          int
	Carts          int
	Orders         int
	Ratings        int
	Votes          int
}

func (s *Summary) Log() {
	log.Printf("Seeding complete:")
	log.Printf("  payment methods: %d", s.PaymentMethods)
	log.Printf("  publishers:      %d", s.Publishers)
	log.Printf("  authors:         %d", s.Authors)
	log.Printf("  categories:      %d", s.Categories)
	log.Printf("  users:           %d (1 admin)", s.Users)
	log.Printf("  books:           %d", s.Books)
	log.Printf("  carts:           %d", s.Carts)
	log.Printf("  orders:          %d", s.Orders)
	log.Printf("  ratings:         %d", s.Ratings)
	log.Printf("  votes:           %d", s.Votes)
	log.Printf("Test credentials: admin@bookstore.com / password123")
}

// Run wipes the datastore and rebuilds it from the reference catalog
// and cfg. Any failure aborts the run; the one tolerated case is a
// duplicate rating vote, which the unique constraint may reject under
// random sampling.
func Run(ctx context.Context, db *sql.DB, cfg Config) (*Summary, error) {
	if err := validateOrder(); err != nil {
		return nil, fmt.Errorf("entity graph: %w", err)
	}

	hashed, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	g := &generator{
		db:      db,
		cfg:     cfg,
		hashed:  hashed,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		summary: &Summary{},
	}

	log.Printf("Cleaning up old data...")
	if err := g.cleanup(ctx); err != nil {
		return nil, err
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"payment methods", g.createPaymentMethods},
		{"publishers", g.createPublishers},
		{"authors", g.createAuthors},
		{"categories", g.createCategories},
		{"users", g.createUsers},
		{"books", g.createBooks},
		{"carts", g.createCarts},
		{"orders", g.createOrders},
		{"ratings", g.createRatings},
		{"reset token", g.createResetToken},
	}
	for _, step := range steps {
		log.Printf("Creating %s...", step.name)
		if err := step.fn(ctx); err != nil {
			return nil, fmt.Errorf("create %s: %w", step.name, err)
		}
	}

	return g.summary, nil
}

type generator struct {
	db      *sql.DB
	cfg     Config
	hashed  string
	rng     *rand.Rand
	summary *Summary

	methods    []models.PaymentMethod
	publishers map[string]int64
	authors    map[string]int64
	categories map[string]int64
	admin      *models.User
	users      []models.User
	books      []models.Book
}

// cleanup removes everything a previous run may have left, children
// before parents per the entity graph.
func (g *generator) cleanup(ctx context.Context) error {
	for _, table := range deletionOrder() {
		if _, err := g.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (g *generator) createPaymentMethods(ctx context.Context) error {
	for _, name := range paymentMethodNames {
		method, err := store.CreatePaymentMethod(ctx, g.db, name)
		if err != nil {
			return err
		}
		g.methods = append(g.methods, *method)
	}
	g.summary.PaymentMethods = len(g.methods)
	return nil
}

func (g *generator) createPublishers(ctx context.Context) error {
	g.publishers = make(map[string]int64)
	for _, name := range publisherNames {
		p, err := store.CreatePublisher(ctx, g.db, name)
		if err != nil {
			return err
		}
		g.publishers[name] = p.ID
	}
	g.summary.Publishers = len(g.publishers)
	return nil
}

func (g *generator) createAuthors(ctx context.Context) error {
	g.authors = make(map[string]int64)
	for _, name := range authorNames {
		a, err := store.CreateAuthor(ctx, g.db, name)
		if err != nil {
			return err
		}
		g.authors[name] = a.ID
	}
	// The catalog names a few authors outside the standing list.
	for _, book := range bookCatalog {
		if _, ok := g.authors[book.Author]; !ok {
			a, err := store.CreateAuthor(ctx, g.db, book.Author)
			if err != nil {
				return err
			}
			g.authors[book.Author] = a.ID
		}
	}
	g.summary.Authors = len(g.authors)
	return nil
}

// createCategories builds the tree roots-first. Roughly 30% of parents
// get one child category.
func (g *generator) createCategories(ctx context.Context) error {
	g.categories = make(map[string]int64)
	for _, spec := range categoryTree {
		parent, err := store.CreateCategory(ctx, g.db, spec.Name, nil)
		if err != nil {
			return err
		}
		g.categories[spec.Name] = parent.ID

		if len(spec.Children) > 0 && g.rng.Float64() < 0.3 {
			childName := randomElement(g.rng, spec.Children)
			child, err := store.CreateCategory(ctx, g.db, childName, &parent.ID)
			if err != nil {
				return err
			}
			g.categories[childName] = child.ID
		}
	}
	g.summary.Categories = len(g.categories)
	return nil
}

func (g *generator) createUsers(ctx context.Context) error {
	admin, err := store.CreateUser(ctx, g.db, store.CreateUserRequest{
		Username: "admin",
		Email:    "admin@bookstore.com",
		Password: g.hashed,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
		Phone:    "+1-555-0100",
		Address:  "123 Admin Street, New York, NY 10001",
	})
	if err != nil {
		return err
	}
	g.admin = admin

	for i := 0; i < g.cfg.NumUsers; i++ {
		first := randomElement(g.rng, firstNames)
		last := randomElement(g.rng, lastNames)
		user, err := store.CreateUser(ctx, g.db, store.CreateUserRequest{
			Username: fmt.Sprintf("%s%s%d", strings.ToLower(first), strings.ToLower(last), i),
			Email:    fmt.Sprintf("%s.%s%d@email.com", strings.ToLower(first), strings.ToLower(last), i),
			Password: g.hashed,
			FullName: first + " " + last,
			Role:     models.RoleUser,
			Phone:    fmt.Sprintf("+1-555-%04d", 1000+i),
			Address: fmt.Sprintf("%d %s %s, %s",
				randomInt(g.rng, 100, 9999),
				randomElement(g.rng, streetNames),
				randomElement(g.rng, streetTypes),
				randomElement(g.rng, cityNames)),
		})
		if err != nil {
			return err
		}
		g.users = append(g.users, *user)
	}
	g.summary.Users = len(g.users) + 1
	return nil
}

func (g *generator) createBooks(ctx context.Context) error {
	allAuthorIDs := make([]int64, 0, len(g.authors))
	for _, id := range g.authors {
		allAuthorIDs = append(allAuthorIDs, id)
	}

	for i, spec := range bookCatalog {
		publisherID, ok := g.publishers[spec.Publisher]
		if !ok {
			p, err := store.CreatePublisher(ctx, g.db, spec.Publisher)
			if err != nil {
				return err
			}
			g.publishers[spec.Publisher] = p.ID
			publisherID = p.ID
			g.summary.Publishers++
		}

		categoryID, ok := g.categories[spec.Category]
		if !ok {
			categoryID = g.categories["Fiction"]
		}

		// Mostly single-author books, with the occasional one or two
		// random co-authors.
		authorIDs := []int64{g.authors[spec.Author]}
		for len(authorIDs) < 3 && g.rng.Float64() < 0.15 {
			candidate := randomElement(g.rng, allAuthorIDs)
			duplicate := false
			for _, id := range authorIDs {
				if id == candidate {
					duplicate = true
					break
				}
			}
			if !duplicate {
				authorIDs = append(authorIDs, candidate)
			}
		}

		book, err := store.CreateBook(ctx, g.db, store.CreateBookRequest{
			Title:       spec.Title,
			Price:       decimal.NewFromFloat(spec.Price),
			Stock:       randomInt(g.rng, 10, 100),
			Description: spec.Desc,
			ImageURL:    bookImages[i%len(bookImages)],
			PublisherID: publisherID,
			CategoryID:  categoryID,
			AuthorIDs:   authorIDs,
		})
		if err != nil {
			return err
		}
		g.books = append(g.books, *book)
	}
	g.summary.Books = len(g.books)
	return nil
}

// createCarts gives roughly half the users a cart with 1-3 distinct
// books. The cached total is the sum of price x quantity over the items
// assigned here, never read back from storage.
func (g *generator) createCarts(ctx context.Context) error {
	for _, user := range g.users[:len(g.users)/2] {
		picks := g.pickDistinctBooks(randomInt(g.rng, 1, 3))

		cart := &models.Cart{UserID: user.ID}
		total := decimal.Zero
		for _, book := range picks {
			qty := randomInt(g.rng, 1, 2)
			cart.Items = append(cart.Items, models.CartItem{
				BookID:   book.ID,
				Quantity: qty,
			})
			total = total.Add(book.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
		cart.Total = total

		if err := store.InsertCart(ctx, g.db, cart); err != nil {
			return err
		}
		g.summary.Carts++
	}
	return nil
}

func (g *generator) createOrders(ctx context.Context) error {
	for i := 0; i < g.cfg.NumOrders; i++ {
		user := randomElement(g.rng, g.users)
		picks := g.pickDistinctBooks(randomInt(g.rng, 1, g.cfg.MaxItemsPerOrder))

		order := &models.Order{
			UserID:          user.ID,
			Status:          randomElement(g.rng, models.OrderStatuses),
			ShippingAddress: user.Address,
			OrderDate:       randomDate(g.rng, 6),
		}

		total := decimal.Zero
		for _, book := range picks {
			qty := randomInt(g.rng, 1, 3)
			order.Items = append(order.Items, models.OrderItem{
				BookID:   book.ID,
				Quantity: qty,
				Price:    book.Price,
			})
			total = total.Add(book.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
		order.Total = total

		switch order.Status {
		case models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered:
			order.ConfirmedByID = &g.admin.ID
		}

		if err := store.InsertOrder(ctx, g.db, order); err != nil {
			return err
		}
		g.summary.Orders++

		// Cancelled orders carry no payment record.
		if order.Status == models.OrderStatusCancelled {
			continue
		}

		paymentStatus := models.PaymentStatusPending
		switch order.Status {
		case models.OrderStatusDelivered:
			paymentStatus = models.PaymentStatusCompleted
		case models.OrderStatusProcessing, models.OrderStatusShipped:
			if g.rng.Float64() > 0.3 {
				paymentStatus = models.PaymentStatusCompleted
			}
		}

		payment := &models.Payment{
			OrderID:         order.ID,
			PaymentMethodID: randomElement(g.rng, g.methods).ID,
			Status:          paymentStatus,
			Total:           order.Total,
		}
		if paymentStatus == models.PaymentStatusCompleted {
			now := time.Now()
			payment.PaymentDate = &now
		}
		if err := store.CreatePayment(ctx, g.db, payment); err != nil {
			return err
		}
	}
	return nil
}

// createRatings samples random (user, book) pairs, skipping pairs it
// has already used so the uniqueness constraint holds. Some ratings get
// one vote from a second, distinct user, weighted 80/20 toward upvotes.
func (g *generator) createRatings(ctx context.Context) error {
	seen := make(map[[2]int64]bool)

	for i := 0; i < g.cfg.NumRatings; i++ {
		user := randomElement(g.rng, g.users)
		book := randomElement(g.rng, g.books)

		pair := [2]int64{user.ID, book.ID}
		if seen[pair] {
			continue
		}
		seen[pair] = true

		rating := &models.Rating{
			UserID:  user.ID,
			BookID:  book.ID,
			Stars:   randomInt(g.rng, 3, 5),
			Content: randomElement(g.rng, reviewTexts),
		}
		if err := store.CreateRating(ctx, g.db, rating); err != nil {
			return err
		}
		g.summary.Ratings++

		if g.rng.Float64() > 0.6 {
			voter := randomElement(g.rng, g.users)
			if voter.ID == user.ID {
				continue
			}
			voteType := models.VoteUp
			if g.rng.Float64() <= 0.2 {
				voteType = models.VoteDown
			}
			err := store.InsertRatingVote(ctx, g.db, &models.RatingVote{
				RatingID: rating.ID,
				UserID:   voter.ID,
				VoteType: voteType,
			})
			if err != nil {
				// Random sampling can reuse a (rating, voter) pair;
				// the unique constraint rejecting it is not fatal.
				if database.IsUniqueViolation(err) {
					continue
				}
				return err
			}
			g.summary.Votes++
		}
	}
	return nil
}

func (g *generator) createResetToken(ctx context.Context) error {
	user := randomElement(g.rng, g.users)
	_, err := store.CreatePasswordResetToken(ctx, g.db, user.ID,
		auth.NewResetToken(), time.Now().Add(time.Hour))
	return err
}

// pickDistinctBooks selects n distinct books uniformly at random.
func (g *generator) pickDistinctBooks(n int) []models.Book {
	if n > len(g.books) {
		n = len(g.books)
	}
	picked := make(map[int64]bool, n)
	var books []models.Book
	for len(books) < n {
		book := randomElement(g.rng, g.books)
		if picked[book.ID] {
			continue
		}
		picked[book.ID] = true
		books = append(books, book)
	}
	return books
}

func randomElement[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

func randomInt(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

// randomDate returns a time uniformly distributed over the past
// monthsAgo months.
func randomDate(rng *rand.Rand, monthsAgo int) time.Time {
	now := time.Now()
	past := now.AddDate(0, -monthsAgo, 0)
	span := now.Sub(past)
	return past.Add(time.Duration(rng.Int63n(int64(span))))
}
