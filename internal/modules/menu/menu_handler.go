package menu

import (
	"errors"
	"net/http"

	"kitchen-orders/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for menu items.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new menu handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts menu routes: the listing is public, writes are admin.
func (h *Handler) RegisterRoutes(public, admin *echo.Group) {
	public.GET("/menu-items", h.ListItems)

	admin.POST("/menu-items", h.CreateItem)
	admin.PUT("/menu-items/:id", h.UpdateItem)
	admin.DELETE("/menu-items/:id", h.DeleteItem)
}

func (h *Handler) ListItems(c echo.Context) error {
	items, err := h.svc.ListItems(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListItems: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to list menu items"))
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return c.JSON(http.StatusOK, models.OK(items))
}

func (h *Handler) CreateItem(c echo.Context) error {
	var req models.CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	item, err := h.svc.CreateItem(c.Request().Context(), req)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, models.Fail(ve.Error()))
		}
		c.Logger().Error("Handler.CreateItem: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create menu item"))
	}
	return c.JSON(http.StatusCreated, models.OK(item))
}

func (h *Handler) UpdateItem(c echo.Context) error {
	itemID := c.Param("id")
	if uuid.Validate(itemID) != nil {
		return c.JSON(http.StatusNotFound, models.Fail("Menu item not found"))
	}

	var req models.UpdateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	item, err := h.svc.UpdateItem(c.Request().Context(), itemID, req)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, models.Fail(ve.Error()))
		}
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Menu item not found"))
		}
		c.Logger().Error("Handler.UpdateItem: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update menu item"))
	}
	return c.JSON(http.StatusOK, models.OK(item))
}

func (h *Handler) DeleteItem(c echo.Context) error {
	itemID := c.Param("id")
	if uuid.Validate(itemID) != nil {
		return c.JSON(http.StatusNotFound, models.Fail("Menu item not found"))
	}

	if err := h.svc.DeleteItem(c.Request().Context(), itemID); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return c.JSON(http.StatusConflict, models.Fail("Cannot delete item with existing orders"))
		}
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Menu item not found"))
		}
		c.Logger().Error("Handler.DeleteItem: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete menu item"))
	}
	return c.JSON(http.StatusOK, models.OK(nil))
}
