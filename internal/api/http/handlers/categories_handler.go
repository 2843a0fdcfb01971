package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/CoaxnTechnology/Betogether-API/internal/api/dto"
	"github.com/CoaxnTechnology/Betogether-API/internal/service"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

// CategoriesHandler exposes category browsing and the nearest lookup.
type CategoriesHandler struct {
	categories *service.CategoryService
	baseURL    string
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService, baseURL string) *CategoriesHandler {
	return &CategoriesHandler{categories: categoryService, baseURL: baseURL}
}

// List GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	items, total, err := h.categories.ListCategories(c.Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CategoryListResponse{
		Items: dto.NewCategoryResponseList(items, h.baseURL),
		Total: total,
	}})
}

// Get GET /api/categories/:identifier. Accepts a numeric id or a name.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	if identifier == "" {
		return apperrors.NewValidationError("identifier required", nil)
	}
	category, err := h.categories.GetByIdentifier(c.Context(), identifier)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(category, h.baseURL)})
}

// Nearest POST /api/category/nearest. Resolves the closest categories to a
// point, optionally constrained to a radius in kilometers.
func (h *CategoriesHandler) Nearest(c *fiber.Ctx) error {
	var req dto.NearestCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return apperrors.NewValidationError("latitude/longitude out of range", nil)
	}
	if req.RadiusKm != nil && *req.RadiusKm <= 0 {
		return apperrors.NewValidationError("radius_km must be positive", nil)
	}

	result, err := h.categories.Nearest(c.Context(), req.Latitude, req.Longitude, req.RadiusKm)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNearestCategoryResponse(result, h.baseURL)})
}

func parseCategoryID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid category id", nil)
	}
	return id, nil
}
