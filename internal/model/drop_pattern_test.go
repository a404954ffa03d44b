package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDropPatternOrderInvariant(t *testing.T) {
	a := NewDropPattern(ItemDrops{{ItemID: "30013", Quantity: 1}, {ItemID: "30012", Quantity: 2}})
	b := NewDropPattern(ItemDrops{{ItemID: "30012", Quantity: 2}, {ItemID: "30013", Quantity: 1}})

	assert.Equal(t, a.Hash, b.Hash)
	assert.Equal(t, a.OriginalFingerprint, b.OriginalFingerprint)
	assert.Equal(t, a.Drops, b.Drops)
	assert.Equal(t, "30012:2|30013:1", a.OriginalFingerprint)
}

func TestNewDropPatternDistinguishesQuantities(t *testing.T) {
	a := NewDropPattern(ItemDrops{{ItemID: "30013", Quantity: 1}})
	b := NewDropPattern(ItemDrops{{ItemID: "30013", Quantity: 2}})

	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestNewDropPatternEmpty(t *testing.T) {
	p := NewDropPattern(nil)

	assert.Empty(t, p.Drops)
	assert.Equal(t, "", p.OriginalFingerprint)
}

func TestNewDropPatternDoesNotMutateInput(t *testing.T) {
	drops := ItemDrops{{ItemID: "B", Quantity: 1}, {ItemID: "A", Quantity: 2}}
	NewDropPattern(drops)

	assert.Equal(t, ItemDrops{{ItemID: "B", Quantity: 1}, {ItemID: "A", Quantity: 2}}, drops)
}
