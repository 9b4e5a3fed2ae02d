package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivedState(t *testing.T) {
	cases := []struct {
		name         string
		stock        int
		reorderLevel int
		status       StockState
		availability Availability
	}{
		{"plenty of stock", 50, 10, InStock, Available},
		{"low but in stock", 5, 10, LowStock, Available},
		{"exactly at reorder level", 10, 10, LowStock, Available},
		{"just above reorder level", 11, 10, InStock, Available},
		{"out of stock", 0, 10, LowStock, Unavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, availability := DerivedState(tc.stock, tc.reorderLevel)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.availability, availability)
		})
	}
}

func TestApplyDerivedStateOverridesAuthoredFields(t *testing.T) {
	item := InventoryItem{
		CurrentStock: 0,
		ReorderLevel: 10,
		Availability: Available, // authored by hand, must be overwritten
		Status:       InStock,
	}
	item.ApplyDerivedState()
	assert.Equal(t, Unavailable, item.Availability)
	assert.Equal(t, LowStock, item.Status)
}

func TestSellsAsAvailable(t *testing.T) {
	assert.True(t, (&InventoryItem{Availability: Available}).SellsAsAvailable())
	assert.True(t, (&InventoryItem{Availability: ""}).SellsAsAvailable(), "legacy docs without the field sell")
	assert.False(t, (&InventoryItem{Availability: Unavailable}).SellsAsAvailable())
}
