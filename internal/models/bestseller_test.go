package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePercentage(t *testing.T) {
	tests := []struct {
		name     string
		lastYear int
		thisYear int
		want     float64
	}{
		{"growth", 100, 150, 50},
		{"decline", 100, 75, -25},
		{"flat", 80, 80, 0},
		{"new product with sales", 0, 40, 100},
		{"new product without sales", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &BestSeller{LastYearQty: tt.lastYear, ThisYearQty: tt.thisYear}
			b.ComputePercentage()
			assert.InDelta(t, tt.want, b.PercentageIncrease, 0.001)
		})
	}
}

func TestTrendStatus(t *testing.T) {
	assert.Equal(t, "up", (&BestSeller{PercentageIncrease: 12.5}).TrendStatus())
	assert.Equal(t, "down", (&BestSeller{PercentageIncrease: -3}).TrendStatus())
	assert.Equal(t, "same", (&BestSeller{}).TrendStatus())
}
