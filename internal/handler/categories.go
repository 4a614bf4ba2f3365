package handler

import (
	"net/http"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/model"
	"github.com/RafaelCassiano30011/box-menager/internal/repository"

	"github.com/gin-gonic/gin"
)

// CategoriesHandler talks to the repository directly. Categories have no
// business rules beyond uniqueness, which the database enforces.
type CategoriesHandler struct{ repo repository.CategoryRepository }

func NewCategoriesHandler(repo repository.CategoryRepository) *CategoriesHandler {
	return &CategoriesHandler{repo: repo}
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateCategoryRequest true "Category name"
// @Success      201  {object} dto.CategoryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/categories [post]
func (h *CategoriesHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	category := &model.Category{Name: req.Name}
	if err := h.repo.Create(c.Request.Context(), category); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryResponse{ID: category.ID.String(), Name: category.Name})
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array} dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoriesHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, dto.CategoryResponse{ID: cat.ID.String(), Name: cat.Name})
	}
	c.JSON(http.StatusOK, resp)
}
