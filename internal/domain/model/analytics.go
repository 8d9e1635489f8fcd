package model

// CategorySales is one row of the top categories table.
type CategorySales struct {
	Category ProductCategory `json:"category"`
	Sales    float64         `json:"sales"`
}

// TrendPoint is one sample of the sales trend chart.
type TrendPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

// AnalyticsOverview aggregates dashboard metrics for the selected range.
type AnalyticsOverview struct {
	TotalSales    float64         `json:"total_sales"`
	OrdersCount   int             `json:"orders_count"`
	AvgOrderValue float64         `json:"avg_order_value"`
	TopCategories []CategorySales `json:"top_categories"`
	Trend         []TrendPoint    `json:"trend"`
}

// DashboardFilter is the dashboard date range and category selector.
type DashboardFilter struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Category  ProductCategory `json:"category"`
}
