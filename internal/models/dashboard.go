package models

// DashboardStats is the aggregated inventory overview served to the UI.
type DashboardStats struct {
	TotalStock     int             `json:"totalStock"`
	LowStockCount  int             `json:"lowStockCount"`
	LowStockItems  []Product       `json:"lowStockItems"`
	InToday        int             `json:"inToday"`
	OutToday       int             `json:"outToday"`
	InventoryValue float64         `json:"inventoryValue"`
	Movements      []Movement      `json:"movements"`
	Categories     []CategoryStats `json:"categories"`
}

// CategoryStats summarizes one category's share of the inventory.
type CategoryStats struct {
	CategoryID   *int64  `db:"category_id" json:"categoryId,omitempty"`
	CategoryName string  `db:"category_name" json:"categoryName"`
	ProductCount int     `db:"product_count" json:"productCount"`
	TotalStock   int     `db:"total_stock" json:"totalStock"`
	TotalValue   float64 `db:"total_value" json:"totalValue"`
}

// EmployeeOverview is the lightweight landing view for staff accounts.
type EmployeeOverview struct {
	ProductCount  int          `json:"productCount"`
	LowStockCount int          `json:"lowStockCount"`
	IssuedToday   int          `json:"issuedToday"`
	NextFestivals []Festival   `json:"nextFestivals"`
	TopToday      []TopProduct `json:"topToday"`
}

// FinancialSummary is the admin-only value overview.
type FinancialSummary struct {
	TotalSellingValue float64 `db:"total_selling_value" json:"totalSellingValue"`
	ProductCount      int     `db:"product_count" json:"productCount"`
	TotalStock        int     `db:"total_stock" json:"totalStock"`
}
