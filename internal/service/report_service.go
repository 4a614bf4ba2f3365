package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/infra"
	"github.com/RafaelCassiano30011/box-menager/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	metricsCacheKey = "cache:dashboard:metrics"
	metricsCacheTTL = 30 * time.Second
)

type ReportService interface {
	DashboardMetrics(ctx context.Context) (*dto.DashboardMetricsResponse, error)
	RecentSales(ctx context.Context, limit int) ([]dto.SaleResponse, error)
	SalesInRange(ctx context.Context, filter dto.SalesReportFilter) ([]dto.SaleResponse, error)
	TopProducts(ctx context.Context, limit int) ([]dto.TopProductResponse, error)
	ExportSalesPDF(ctx context.Context, filter dto.SalesReportFilter) (string, error)
}

type reportService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	rdb          *redis.Client
	storagePath  string
}

func NewReportService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	rdb *redis.Client,
	storagePath string,
) ReportService {
	return &reportService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		rdb:          rdb,
		storagePath:  storagePath,
	}
}

// DashboardMetrics aggregates today's numbers, with growth computed against
// yesterday. Results are cached in redis for 30s — the dashboard polls.
func (s *reportService) DashboardMetrics(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, metricsCacheKey).Bytes(); err == nil {
			var resp dto.DashboardMetricsResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	todaySales, todaySold, err := s.saleRepo.TotalsBetween(ctx, todayStart, tomorrow)
	if err != nil {
		return nil, err
	}
	yesterdaySales, _, err := s.saleRepo.TotalsBetween(ctx, yesterdayStart, todayStart)
	if err != nil {
		return nil, err
	}

	totalStock, err := s.productRepo.SumStock(ctx)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.productRepo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	netChangeToday, err := s.movementRepo.NetChangeSince(ctx, todayStart)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardMetricsResponse{
		TodaySales:        todaySales,
		TodayProductsSold: todaySold,
		TotalStock:        totalStock,
		TotalProducts:     totalProducts,
		SalesGrowth:       growthPct(todaySales, yesterdaySales),
		StockGrowth:       stockGrowthPct(totalStock, netChangeToday),
	}

	if s.rdb != nil {
		if encoded, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, metricsCacheKey, encoded, metricsCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to cache dashboard metrics")
			}
		}
	}
	return resp, nil
}

// growthPct returns (current − previous) / previous × 100, rounded to 1dp.
// With no previous activity the growth is 100% if there is any today, else 0.
func growthPct(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
}

// stockGrowthPct compares current total stock against the start of the day.
func stockGrowthPct(totalStock, netChangeToday int) decimal.Decimal {
	startOfDay := totalStock - netChangeToday
	if startOfDay <= 0 {
		if totalStock > 0 {
			return decimal.NewFromInt(100)
		}
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(netChangeToday)).
		Div(decimal.NewFromInt(int64(startOfDay))).
		Mul(decimal.NewFromInt(100)).Round(1)
}

func (s *reportService) RecentSales(ctx context.Context, limit int) ([]dto.SaleResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	sales, err := s.saleRepo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, *saleToResponse(&sales[i]))
	}
	return responses, nil
}

// reportRange parses the inclusive date filter into a [start, end) interval.
func reportRange(filter dto.SalesReportFilter) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", filter.StartDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", filter.EndDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate: %w", err)
	}
	return start, end.AddDate(0, 0, 1), nil
}

func (s *reportService) SalesInRange(ctx context.Context, filter dto.SalesReportFilter) ([]dto.SaleResponse, error) {
	start, end, err := reportRange(filter)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.InRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, *saleToResponse(&sales[i]))
	}
	return responses, nil
}

func (s *reportService) TopProducts(ctx context.Context, limit int) ([]dto.TopProductResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	rows, err := s.saleRepo.TopProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.TopProductResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.TopProductResponse{
			ProductID:    row.ProductID.String(),
			Name:         row.Name,
			Category:     row.Category,
			Price:        row.Price,
			TotalSold:    row.TotalSold,
			TotalRevenue: row.TotalRevenue,
		})
	}
	return responses, nil
}

func (s *reportService) ExportSalesPDF(ctx context.Context, filter dto.SalesReportFilter) (string, error) {
	start, end, err := reportRange(filter)
	if err != nil {
		return "", err
	}
	sales, err := s.saleRepo.InRange(ctx, start, end)
	if err != nil {
		return "", err
	}
	return infra.GenerateSalesReportPDF(sales, start, end.AddDate(0, 0, -1), s.storagePath)
}
