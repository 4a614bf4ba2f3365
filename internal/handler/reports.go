package handler

import (
	"net/http"
	"strconv"

	"github.com/RafaelCassiano30011/box-menager/internal/apierror"
	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc        service.ReportService
	productSvc service.ProductService
}

func NewReportsHandler(svc service.ReportService, productSvc service.ProductService) *ReportsHandler {
	return &ReportsHandler{svc: svc, productSvc: productSvc}
}

// DashboardMetrics godoc
// @Summary      Dashboard metrics
// @Description  Today's sales, units sold, stock totals and growth vs yesterday. Cached for 30s.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object} dto.DashboardMetricsResponse
// @Router       /api/dashboard/metrics [get]
func (h *ReportsHandler) DashboardMetrics(c *gin.Context) {
	resp, err := h.svc.DashboardMetrics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock godoc
// @Summary      Products at or below their minimum stock
// @Tags         dashboard
// @Produce      json
// @Success      200  {array} dto.ProductResponse
// @Router       /api/dashboard/low-stock [get]
func (h *ReportsHandler) LowStock(c *gin.Context) {
	resp, err := h.productSvc.LowStock(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecentSales godoc
// @Summary      Most recent sales
// @Tags         dashboard
// @Produce      json
// @Param        limit query int false "Number of sales (default 5, max 50)"
// @Success      200  {array} dto.SaleResponse
// @Router       /api/dashboard/recent-sales [get]
func (h *ReportsHandler) RecentSales(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit < 1 || limit > 50 {
		limit = 5
	}

	resp, err := h.svc.RecentSales(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesReport godoc
// @Summary      Sales within a date range
// @Tags         reports
// @Produce      json
// @Param        startDate query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param        endDate   query string true "End date (YYYY-MM-DD, inclusive)"
// @Success      200  {array} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/reports/sales [get]
func (h *ReportsHandler) SalesReport(c *gin.Context) {
	filter, ok := bindReportFilter(c)
	if !ok {
		return
	}

	resp, err := h.svc.SalesInRange(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProducts godoc
// @Summary      Best-selling products
// @Tags         reports
// @Produce      json
// @Param        limit query int false "Number of products (default 10, max 50)"
// @Success      200  {array} dto.TopProductResponse
// @Router       /api/reports/top-products [get]
func (h *ReportsHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	resp, err := h.svc.TopProducts(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportSalesPDF godoc
// @Summary      Export a sales report as PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        startDate query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param        endDate   query string true "End date (YYYY-MM-DD, inclusive)"
// @Success      200  {file} file
// @Failure      400  {object} apierror.APIError
// @Router       /api/reports/sales/export [get]
func (h *ReportsHandler) ExportSalesPDF(c *gin.Context) {
	filter, ok := bindReportFilter(c)
	if !ok {
		return
	}

	path, err := h.svc.ExportSalesPDF(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=sales-report.pdf")
	c.File(path)
}

func bindReportFilter(c *gin.Context) (dto.SalesReportFilter, bool) {
	var filter dto.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters: "+err.Error()))
		return filter, false
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("startDate and endDate are required in YYYY-MM-DD format"))
		return filter, false
	}
	return filter, true
}
