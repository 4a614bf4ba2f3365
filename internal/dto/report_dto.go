package dto

import "github.com/shopspring/decimal"

// DashboardMetricsResponse backs the dashboard landing cards. Growth values
// compare today against yesterday, as a percentage.
type DashboardMetricsResponse struct {
	TodaySales        decimal.Decimal `json:"todaySales"`
	TodayProductsSold int             `json:"todayProductsSold"`
	TotalStock        int             `json:"totalStock"`
	TotalProducts     int64           `json:"totalProducts"`
	SalesGrowth       decimal.Decimal `json:"salesGrowth"`
	StockGrowth       decimal.Decimal `json:"stockGrowth"`
}

type TopProductResponse struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	TotalSold    int             `json:"totalSold"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// SalesReportFilter is bound from the query string of the report endpoints.
type SalesReportFilter struct {
	StartDate string `form:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   validate:"required,datetime=2006-01-02"`
}
