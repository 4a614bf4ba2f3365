package handler

import (
	"net/http"

	"github.com/RafaelCassiano30011/box-menager/internal/apierror"
	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// CreateMovement godoc
// @Summary      Record a stock movement
// @Description  Applies a manual stock entry or exit to a product variation and logs it.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateMovementRequest true "Movement detail"
// @Success      201  {object} dto.MovementResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /api/stock-movements [post]
func (h *StockHandler) CreateMovement(c *gin.Context) {
	var req dto.CreateMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CreateMovement(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMovements godoc
// @Summary      List stock movements
// @Description  Returns movements newest first, filterable by product and type.
// @Tags         stock
// @Produce      json
// @Param        productId query string false "Filter by product ID"
// @Param        type      query string false "Filter by movement type (in|out)"
// @Param        page      query int    false "Page number"
// @Param        limit     query int    false "Page size"
// @Success      200  {object} dto.MovementListResponse
// @Router       /api/stock-movements [get]
func (h *StockHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters: "+err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}

	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAvailable godoc
// @Summary      Current stock of a variation
// @Tags         stock
// @Produce      json
// @Param        id          path string true "Product ID"
// @Param        variationId path string true "Variation ID"
// @Success      200  {object} map[string]int
// @Failure      404  {object} apierror.APIError
// @Router       /api/products/{id}/variations/{variationId}/stock [get]
func (h *StockHandler) GetAvailable(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product ID"))
		return
	}
	variationID, err := uuid.Parse(c.Param("variationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid variation ID"))
		return
	}

	available, err := h.svc.GetAvailable(c.Request.Context(), productID, variationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}
