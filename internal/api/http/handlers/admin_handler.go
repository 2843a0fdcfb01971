package handlers

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/CoaxnTechnology/Betogether-API/internal/api/dto"
	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/service"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

// AdminHandler exposes the back-office endpoints.
type AdminHandler struct {
	auth       *service.AuthService
	admin      *service.AdminService
	categories *service.CategoryService
	baseURL    string
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, adminService *service.AdminService, categoryService *service.CategoryService, baseURL string) *AdminHandler {
	return &AdminHandler{auth: authService, admin: adminService, categories: categoryService, baseURL: baseURL}
}

// Login POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email, password required", nil)
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AdminLoginResponse{
		Admin:       dto.NewAdminResponse(admin),
		AccessToken: token,
		ExpiresAt:   exp,
		TokenType:   "bearer",
	}})
}

// Dashboard GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	dashboard, err := h.admin.GetDashboard(c.Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDashboardResponse(dashboard, h.baseURL)})
}

// Cities GET /api/admin/cities.
func (h *AdminHandler) Cities(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.CitiesResponse{Countries: domain.AllowedCities}})
}

// CreateCategory POST /api/admin/categories.
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	category, err := h.categories.CreateCategory(c.Context(), service.CreateCategoryInput{
		Name:               strings.TrimSpace(req.Name),
		Image:              req.Image,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Tags:               req.Tags,
		ProviderShare:      req.ProviderShare,
		SeekerShare:        req.SeekerShare,
		DiscountPercentage: req.DiscountPercentage,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(category, h.baseURL)})
}

// UpdateCategory PUT /api/admin/categories/:id.
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseCategoryID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	category, err := h.categories.UpdateCategory(c.Context(), id, service.UpdateCategoryInput{
		Name:               req.Name,
		Image:              req.Image,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Tags:               req.Tags,
		ProviderShare:      req.ProviderShare,
		SeekerShare:        req.SeekerShare,
		DiscountPercentage: req.DiscountPercentage,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(category, h.baseURL)})
}

// DeleteCategory DELETE /api/admin/categories/:id.
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseCategoryID(c)
	if err != nil {
		return err
	}
	if err := h.categories.DeleteCategory(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListFakeUsers GET /api/admin/fake-users.
func (h *AdminHandler) ListFakeUsers(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 100)

	items, total, err := h.admin.ListFakeUsers(c.Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FakeUserListResponse{
		Items: dto.NewFakeUserResponseList(items),
		Total: total,
	}})
}

// GenerateFakeUsers POST /api/admin/fake-users/generate.
func (h *AdminHandler) GenerateFakeUsers(c *fiber.Ctx) error {
	var req dto.GenerateFakeUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.admin.GenerateFakeUsers(c.Context(), req.City, req.TargetAudience, req.Number)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewFakeUserResponseList(created)})
}

// SetFakeUserStatus PATCH /api/admin/fake-users/status.
func (h *AdminHandler) SetFakeUserStatus(c *fiber.Ctx) error {
	var req dto.FakeUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fu, err := h.admin.SetFakeUserStatus(c.Context(), strings.TrimSpace(req.Email), domain.FakeUserStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFakeUserResponse(fu)})
}

// ImportFakeUsers POST /api/admin/fake-users/import. Accepts a multipart CSV.
func (h *AdminHandler) ImportFakeUsers(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("CSV file required in 'file' field", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("failed to open uploaded file", nil)
	}
	defer file.Close()

	result, err := h.admin.ImportFakeUsers(c.Context(), file)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewImportFakeUsersResponse(result)})
}

// ExportFakeUsers GET /api/admin/fake-users/export.
func (h *AdminHandler) ExportFakeUsers(c *fiber.Ctx) error {
	return h.exportCSV(c, "fake_users.csv", h.admin.ExportFakeUsersCSV)
}

// ExportUsers GET /api/admin/users/export.
func (h *AdminHandler) ExportUsers(c *fiber.Ctx) error {
	return h.exportCSV(c, "users.csv", h.admin.ExportUsersCSV)
}

// ExportCategories GET /api/admin/categories/export.
func (h *AdminHandler) ExportCategories(c *fiber.Ctx) error {
	return h.exportCSV(c, "categories.csv", h.admin.ExportCategoriesCSV)
}

func (h *AdminHandler) exportCSV(c *fiber.Ctx, filename string, exporter func(context.Context, io.Writer) error) error {
	var buf bytes.Buffer
	if err := exporter(c.Context(), &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// GetSettings GET /api/admin/settings.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.admin.GetSettings(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SettingsResponse{Settings: settings}})
}

// UpdateSettings PUT /api/admin/settings.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	saved, err := h.admin.UpdateSettings(c.Context(), req.Settings)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SettingsResponse{Settings: saved}})
}
