package windows

import (
	"errors"
	"net/http"

	"kitchen-orders/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for ordering windows.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new ordering-window handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts window routes: reads are public, writes are admin.
func (h *Handler) RegisterRoutes(public, admin *echo.Group) {
	public.GET("/ordering-windows", h.ListWindows)
	public.GET("/ordering-windows/status", h.GetStatus)

	admin.POST("/ordering-windows", h.CreateWindow)
	admin.DELETE("/ordering-windows/:id", h.DeleteWindow)
}

func (h *Handler) ListWindows(c echo.Context) error {
	includePast := c.QueryParam("all") == "true"

	ws, err := h.svc.ListWindows(c.Request().Context(), includePast)
	if err != nil {
		c.Logger().Error("Handler.ListWindows: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to list ordering windows"))
	}
	if ws == nil {
		ws = []models.OrderingWindow{}
	}
	return c.JSON(http.StatusOK, models.OK(ws))
}

func (h *Handler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, models.OK(h.svc.Status()))
}

func (h *Handler) CreateWindow(c echo.Context) error {
	var req models.CreateOrderingWindowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	w, err := h.svc.CreateWindow(c.Request().Context(), req)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, models.Fail(ve.Error()))
		}
		c.Logger().Error("Handler.CreateWindow: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create ordering window"))
	}
	return c.JSON(http.StatusCreated, models.OK(w))
}

func (h *Handler) DeleteWindow(c echo.Context) error {
	windowID := c.Param("id")
	if uuid.Validate(windowID) != nil {
		return c.JSON(http.StatusNotFound, models.Fail("Ordering window not found"))
	}

	if err := h.svc.DeleteWindow(c.Request().Context(), windowID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Ordering window not found"))
		}
		c.Logger().Error("Handler.DeleteWindow: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete ordering window"))
	}
	return c.JSON(http.StatusOK, models.OK(nil))
}
