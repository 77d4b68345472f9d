package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	now := time.Now()
	sale := 79.99
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	noSale := Product{Price: 100}
	assert.Equal(t, 100.0, noSale.EffectivePrice(now))

	openEnded := Product{Price: 100, SalePrice: &sale}
	assert.Equal(t, sale, openEnded.EffectivePrice(now))

	running := Product{Price: 100, SalePrice: &sale, SaleEndDate: &future}
	assert.Equal(t, sale, running.EffectivePrice(now))

	ended := Product{Price: 100, SalePrice: &sale, SaleEndDate: &past}
	assert.Equal(t, 100.0, ended.EffectivePrice(now))
}

func TestCartTotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Price: 10.10, Quantity: 2},
		{Price: 5.55, Quantity: 3},
	}}
	assert.Equal(t, 36.85, cart.Total())

	empty := Cart{}
	assert.Equal(t, 0.0, empty.Total())
}
