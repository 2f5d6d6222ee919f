package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_orders/internal/policy"
	"github.com/Skotchmaster/shop_orders/pkg/logging"
	middleware "github.com/Skotchmaster/shop_orders/pkg/middleware/auth"
	"github.com/Skotchmaster/shop_orders/services/order/internal/service"
	"github.com/Skotchmaster/shop_orders/services/order/internal/transport"
)

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before the response was written.
const statusClientClosedRequest = 499

type OrderHTTP struct {
	Svc *service.OrderService
}

func principal(c echo.Context) (policy.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return policy.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return p, nil
}

// httpError maps service failures to responses and logs them under event.
func httpError(l *slog.Logger, event string, err error) error {
	var (
		notFound *service.ProductNotFoundError
		noStock  *service.InsufficientStockError
	)
	switch {
	case errors.As(err, &notFound):
		l.Warn(event, "status", 404, "reason", "product not found", "product_id", notFound.ProductID)
		return echo.NewHTTPError(http.StatusNotFound, notFound.Error())
	case errors.As(err, &noStock):
		l.Warn(event, "status", 400, "reason", "insufficient stock", "product", noStock.ProductName)
		return echo.NewHTTPError(http.StatusBadRequest, noStock.Error())
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid order items", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order items")
	case errors.Is(err, policy.ErrForbidden):
		l.Warn(event, "status", 403, "reason", "not admin", "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "Only admins can access this resource")
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "order not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	case errors.Is(err, context.Canceled):
		l.Warn(event, "status", statusClientClosedRequest, "reason", "client canceled", "error", err)
		return echo.NewHTTPError(statusClientClosedRequest, "client canceled")
	case errors.Is(err, context.DeadlineExceeded):
		l.Error(event, "status", 504, "reason", "transaction timed out", "error", err)
		return echo.NewHTTPError(http.StatusGatewayTimeout, "request timed out")
	default:
		l.Error(event, "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	p, err := principal(c)
	if err != nil {
		l.Warn("create_order_error", "status", 401, "reason", "no principal")
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items := make([]service.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.Svc.PlaceOrder(ctx, p.ID, items)
	if err != nil {
		return httpError(l, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "user_id", p.ID)
	return c.JSON(http.StatusCreated, transport.Envelope{
		Message: "Order created successfully",
		Data:    transport.NewOrderResponse(order),
	})
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	p, err := principal(c)
	if err != nil {
		l.Warn("get_orders_error", "status", 401, "reason", "no principal")
		return err
	}

	orders, err := h.Svc.ListForUser(ctx, p.ID)
	if err != nil {
		return httpError(l, "get_orders_error", err)
	}

	l.Info("get_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, transport.Envelope{
		Message: "User orders retrieved successfully",
		Data:    transport.NewOrderList(orders),
	})
}

func (h *OrderHTTP) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_all_orders")

	p, err := principal(c)
	if err != nil {
		l.Warn("get_all_orders_error", "status", 401, "reason", "no principal")
		return err
	}

	orders, err := h.Svc.ListAll(ctx, p)
	if err != nil {
		return httpError(l, "get_all_orders_error", err)
	}

	l.Info("get_all_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, transport.Envelope{
		Message: "All orders retrieved successfully",
		Data:    transport.NewOrderList(orders),
	})
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	p, err := principal(c)
	if err != nil {
		l.Warn("delete_order_error", "status", 401, "reason", "no principal")
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		l.Warn("delete_order_error", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	if err := h.Svc.DeleteByID(ctx, uint(id), p); err != nil {
		return httpError(l, "delete_order_error", err)
	}

	l.Info("delete_order_success", "order_id", id)
	return c.JSON(http.StatusOK, transport.Envelope{Message: "Order deleted successfully"})
}
