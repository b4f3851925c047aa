package orders

import (
	"errors"
	"net/http"

	"kitchen-orders/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new order handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts order routes. Creation and the confirmation view
// are public; the dashboard listing and the picked-up toggle are admin.
func (h *Handler) RegisterRoutes(public, admin *echo.Group) {
	public.POST("/orders", h.CreateOrder)
	public.GET("/orders/:orderId", h.GetConfirmation)

	admin.GET("/orders", h.ListAllOrders)
	admin.PUT("/orders/:orderId/picked", h.SetPicked)
}

func (h *Handler) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), req)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, models.Fail(ve.Error()))
		}
		if errors.Is(err, models.ErrEmptyOrder) {
			return c.JSON(http.StatusBadRequest, models.Fail("Order must contain at least one item"))
		}
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Ordering window or menu item not found"))
		}
		c.Logger().Error("Handler.CreateOrder: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create order"))
	}

	return c.JSON(http.StatusCreated, models.OK(map[string]string{"order_id": order.ID}))
}

func (h *Handler) GetConfirmation(c echo.Context) error {
	orderID := c.Param("orderId")
	if uuid.Validate(orderID) != nil {
		return c.JSON(http.StatusNotFound, models.Fail("Order not found"))
	}

	conf, err := h.svc.GetConfirmation(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Order not found"))
		}
		c.Logger().Error("Handler.GetConfirmation: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve order"))
	}
	return c.JSON(http.StatusOK, models.OK(conf))
}

func (h *Handler) ListAllOrders(c echo.Context) error {
	orders, err := h.svc.ListAllOrders(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListAllOrders: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to list orders"))
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, models.OK(orders))
}

func (h *Handler) SetPicked(c echo.Context) error {
	orderID := c.Param("orderId")
	if uuid.Validate(orderID) != nil {
		return c.JSON(http.StatusNotFound, models.Fail("Order not found"))
	}

	var req models.UpdatePickedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}

	if err := h.svc.MarkPicked(c.Request().Context(), orderID, req.PickedUp); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Order not found"))
		}
		c.Logger().Error("Handler.SetPicked: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update order"))
	}
	return c.JSON(http.StatusOK, models.OK(nil))
}
