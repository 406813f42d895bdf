package seed

import "fmt"

// entity is one kind in the seeded data model, with the tables it
// references. The declared order is a topological order of the
// foreign-key graph: parents before children. Creation walks it
// forward, cleanup walks it backward, so every foreign key resolves at
// the moment each row is written or removed.
type entity struct {
	Table     string
	DependsOn []string
}

var entityOrder = []entity{
	{Table: "payment_methods"},
	{Table: "users"},
	{Table: "password_reset_tokens", DependsOn: []string{"users"}},
	{Table: "publishers"},
	{Table: "authors"},
	{Table: "categories", DependsOn: []string{"categories"}},
	{Table: "books", DependsOn: []string{"publishers", "categories"}},
	{Table: "book_authors", DependsOn: []string{"books", "authors"}},
	{Table: "carts", DependsOn: []string{"users"}},
	{Table: "cart_items", DependsOn: []string{"carts", "books"}},
	{Table: "orders", DependsOn: []string{"users"}},
	{Table: "order_items", DependsOn: []string{"orders", "books"}},
	{Table: "payments", DependsOn: []string{"orders", "payment_methods"}},
	{Table: "ratings", DependsOn: []string{"users", "books"}},
	{Table: "rating_votes", DependsOn: []string{"ratings", "users"}},
}

// deletionOrder returns the tables leaves-first, the order in which a
// prior dataset can be removed without tripping a foreign key.
func deletionOrder() []string {
	tables := make([]string, len(entityOrder))
	for i, e := range entityOrder {
		tables[len(entityOrder)-1-i] = e.Table
	}
	return tables
}

// validateOrder checks that entityOrder really is topological: every
// dependency of an entity appears at or before the entity itself.
// Self-references (the category tree) are allowed.
func validateOrder() error {
	position := make(map[string]int, len(entityOrder))
	for i, e := range entityOrder {
		position[e.Table] = i
	}
	for i, e := range entityOrder {
		for _, dep := range e.DependsOn {
			j, ok := position[dep]
			if !ok {
				return fmt.Errorf("unknown table in dependency graph: %s", dep)
			}
			if j > i {
				return fmt.Errorf("table %s is created before its dependency %s", e.Table, dep)
			}
		}
	}
	return nil
}
