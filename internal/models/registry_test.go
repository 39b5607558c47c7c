package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beesaferoot/unilets/internal/models"
)

func TestAll_ParentsBeforeChildren(t *testing.T) {
	position := make(map[string]int)
	for i, m := range models.All() {
		position[m.(interface{ TableName() string }).TableName()] = i
	}

	assert.Len(t, position, len(models.ModelTypeRegistry))
	assert.Less(t, position["cities"], position["universities"])
	assert.Less(t, position["users"], position["properties"])
	assert.Less(t, position["properties"], position["property_images"])
	assert.Less(t, position["features"], position["property_features"])
	assert.Less(t, position["bookings"], position["payments"])
	assert.Less(t, position["payments"], position["refunds"])
	assert.Less(t, position["payments"], position["rent_payments"])
}
