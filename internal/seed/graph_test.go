package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityOrderIsTopological(t *testing.T) {
	require.NoError(t, validateOrder())
}

func TestDeletionOrderReversesCreation(t *testing.T) {
	deletion := deletionOrder()
	require.Len(t, deletion, len(entityOrder))

	position := make(map[string]int, len(deletion))
	for i, table := range deletion {
		position[table] = i
	}

	// Every table is deleted before anything it depends on.
	for _, e := range entityOrder {
		for _, dep := range e.DependsOn {
			if dep == e.Table {
				continue
			}
			assert.Less(t, position[e.Table], position[dep],
				"%s must be deleted before %s", e.Table, dep)
		}
	}

	assert.Equal(t, "rating_votes", deletion[0])
	assert.Equal(t, "payment_methods", deletion[len(deletion)-1])
}

func TestValidateOrderRejectsBadGraph(t *testing.T) {
	original := entityOrder
	defer func() { entityOrder = original }()

	entityOrder = []entity{
		{Table: "books", DependsOn: []string{"publishers"}},
		{Table: "publishers"},
	}
	assert.Error(t, validateOrder())

	entityOrder = []entity{
		{Table: "books", DependsOn: []string{"missing"}},
	}
	assert.Error(t, validateOrder())
}
