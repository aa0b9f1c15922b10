// Package http exposes the order operations over an Echo HTTP API.
package http

import (
	"errors"
	"net/http"

	"ordermanagement/internal/core/application/usecases/commands"
	"ordermanagement/internal/core/application/usecases/queries"
	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the order API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		cancelOrderHandler: cancelOrderHandler,
		getOrderHandler:    getOrderHandler,
	}
}

// RegisterRoutes attaches the order API routes to the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1/orders")
	api.POST("", s.CreateOrder)
	api.GET("/health", s.Health)
	api.GET("/:id", s.GetOrder)
	api.POST("/:id/cancel", s.CancelOrder)
}

// CreateOrder handles POST /api/v1/orders - creates a new order with its payment.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	customerEmail, err := kernel.NewEmail(request.CustomerEmail)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	items := make([]commands.OrderItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		unitPrice, priceErr := kernel.NewMoneyFromString(item.UnitPrice)
		if priceErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+priceErr.Error())
		}

		items = append(items, commands.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(customerEmail, items)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	response, err := orderToResponse(created)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to render order")
	}

	return ctx.JSON(http.StatusCreated, response)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves an order with its
// items, payment, and shipment.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queryToResponse(view))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels an order that
// has not reached a terminal state.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	response, err := orderToResponse(cancelled)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to render order")
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /api/v1/orders/health - service liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{
		Service: "order-management",
		Status:  "healthy",
	})
}

// domainErrorJSON maps application errors to HTTP status codes:
// validation failures to 400, missing orders to 404, rejected state
// transitions to 409, everything else to 500.
func domainErrorJSON(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidStateTransition):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
