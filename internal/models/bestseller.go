package models

import "time"

// BestSeller tracks how a product sold during a festival. One row exists per
// (product, festival) pair.
type BestSeller struct {
	ID                 int64     `db:"id" json:"id"`
	ProductID          int64     `db:"product_id" json:"productId"`
	FestivalID         int64     `db:"festival_id" json:"festivalId"`
	TotalIssued        int       `db:"total_issued" json:"totalIssued"`
	LastYearQty        int       `db:"last_year_qty" json:"lastYearQty"`
	ThisYearQty        int       `db:"this_year_qty" json:"thisYearQty"`
	PercentageIncrease float64   `db:"percentage_increase" json:"percentageIncrease"`
	Rank               int       `db:"rank" json:"rank"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`

	// Joined fields (populated via JOIN)
	ProductCode  string `db:"product_code" json:"productCode,omitempty"`
	ProductTitle string `db:"product_title" json:"productTitle,omitempty"`
	FestivalName string `db:"festival_name" json:"festivalName,omitempty"`
}

// ComputePercentage recalculates the year-over-year change. A product with no
// sales last year reports 100% when it sold anything this year.
func (b *BestSeller) ComputePercentage() {
	if b.LastYearQty == 0 {
		if b.ThisYearQty > 0 {
			b.PercentageIncrease = 100
		} else {
			b.PercentageIncrease = 0
		}
		return
	}
	b.PercentageIncrease = float64(b.ThisYearQty-b.LastYearQty) / float64(b.LastYearQty) * 100
}

// TrendStatus returns "up", "down", or "same" for the year-over-year change.
func (b *BestSeller) TrendStatus() string {
	switch {
	case b.PercentageIncrease > 0:
		return "up"
	case b.PercentageIncrease < 0:
		return "down"
	default:
		return "same"
	}
}

// TopProduct is one row of the aggregated top-products report.
type TopProduct struct {
	ProductID    int64   `db:"product_id" json:"productId"`
	ProductCode  string  `db:"product_code" json:"productCode"`
	ProductTitle string  `db:"product_title" json:"productTitle"`
	TotalQty     int     `db:"total_qty" json:"totalQty"`
	TotalValue   float64 `db:"total_value" json:"totalValue"`
	OrderCount   int     `db:"order_count" json:"orderCount"`
}

// FestivalForecast suggests order quantities for the next upcoming festival
// based on last year's sales.
type FestivalForecast struct {
	Festival *Festival      `json:"festival"`
	Items    []ForecastItem `json:"items"`
}

// ForecastItem is one product suggestion inside a FestivalForecast.
type ForecastItem struct {
	ProductID    int64   `json:"productId"`
	ProductTitle string  `json:"productTitle"`
	LastYearQty  int     `json:"lastYearQty"`
	SuggestedQty int     `json:"suggestedQty"`
	Confidence   float64 `json:"confidence"`
}
