package handler

import (
	"net/http"

	"github.com/RafaelCassiano30011/box-menager/internal/apierror"
	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct {
	svc      service.ProductService
	stockSvc service.StockService
}

func NewProductsHandler(svc service.ProductService, stockSvc service.StockService) *ProductsHandler {
	return &ProductsHandler{svc: svc, stockSvc: stockSvc}
}

// CreateProduct godoc
// @Summary      Create a product
// @Description  Creates a product with its variations and initial stock.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateProductRequest true "Product detail"
// @Success      201  {object} dto.ProductResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListProducts godoc
// @Summary      List products
// @Description  Returns products with variations, filterable by name and category, paginated.
// @Tags         products
// @Produce      json
// @Param        name     query string false "Filter by name (partial match)"
// @Param        category query string false "Filter by category"
// @Param        page     query int    false "Page number"
// @Param        limit    query int    false "Page size"
// @Success      200  {object} dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters: "+err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}

	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProduct godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProduct godoc
// @Summary      Update a product
// @Description  Partially updates a product. Only provided fields are changed.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id   path string true "Product ID"
// @Param        body body dto.UpdateProductRequest true "Fields to update"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/products/{id} [put]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteProduct godoc
// @Summary      Delete a product
// @Description  Removes a product along with its variations.
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      204  "No Content"
// @Failure      404  {object} apierror.APIError
// @Router       /api/products/{id} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListVariations godoc
// @Summary      List all product variations
// @Tags         products
// @Produce      json
// @Success      200  {array} dto.VariationResponse
// @Router       /api/variations [get]
func (h *ProductsHandler) ListVariations(c *gin.Context) {
	resp, err := h.svc.ListVariations(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProductStockHistory godoc
// @Summary      Stock movement history for a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200  {array} dto.MovementResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/products/{id}/stock-movements [get]
func (h *ProductsHandler) ProductStockHistory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.stockSvc.ProductHistory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product ID"))
		return uuid.Nil, false
	}
	return id, true
}
