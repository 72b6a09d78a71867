package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfit(t *testing.T) {
	p := &Product{CostPrice: 12, SalePrice: 20}
	assert.InDelta(t, 8, p.Profit(), 0.001)
	assert.InDelta(t, 40, p.ProfitMargin(), 0.001)
}

func TestProfitMarginZeroSalePrice(t *testing.T) {
	p := &Product{CostPrice: 12}
	assert.Zero(t, p.ProfitMargin())
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, (&Product{Stock: 3}).IsLowStock(5))
	assert.False(t, (&Product{Stock: 5}).IsLowStock(5))
	assert.False(t, (&Product{Stock: 0}).IsLowStock(5))
}
