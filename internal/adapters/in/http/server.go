// Package http provides the inbound REST adapter. It translates HTTP
// payloads into commands and queries, and maps domain errors onto status
// codes with a uniform {"error": message} body.
package http

import (
	"errors"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	startOrderHandler   commands.StartOrderCommandHandler
	completeStepHandler commands.CompleteStepCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler
	saveAddressHandler  commands.SaveAddressCommandHandler

	// Query handlers
	getOrdersHandler  queries.GetOrdersQueryHandler
	getProfileHandler queries.GetProfileQueryHandler
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	startOrderHandler commands.StartOrderCommandHandler,
	completeStepHandler commands.CompleteStepCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	saveAddressHandler commands.SaveAddressCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getProfileHandler queries.GetProfileQueryHandler,
) *Server {
	return &Server{
		startOrderHandler:   startOrderHandler,
		completeStepHandler: completeStepHandler,
		cancelOrderHandler:  cancelOrderHandler,
		saveAddressHandler:  saveAddressHandler,
		getOrdersHandler:    getOrdersHandler,
		getProfileHandler:   getProfileHandler,
	}
}

// RegisterRoutes mounts all routes and shared middleware on the echo
// instance.
func (s *Server) RegisterRoutes(e *echo.Echo, collector *metrics.Collector, jwtSecret string) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(MetricsMiddleware(collector))
	e.Use(IdentityMiddleware(jwtSecret))

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api/v1")
	api.POST("/orders", s.StartOrder)
	api.POST("/orders/complete", s.CompleteStep)
	api.POST("/orders/cancel", s.CancelOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/profile", s.GetProfile)
	api.POST("/profile", s.SaveAddress)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// StartOrder handles POST /api/v1/orders - places an order and starts its
// workflow run.
func (s *Server) StartOrder(ctx echo.Context) error {
	var request StartOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		item, err := order.NewItem(itemRequest.ProductID, int(itemRequest.Quantity), float64(itemRequest.Price))
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		items = append(items, item)
	}

	var orderCustomer *order.Customer
	if request.Customer != nil {
		c, err := order.NewCustomer(request.Customer.UserID, request.Customer.Name, request.Customer.Address)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		orderCustomer = &c
	}

	cmd, err := commands.NewStartOrderCommand(request.TenantID, items, float64(request.Total), orderCustomer)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, err := s.startOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, snapshot)
}

// CompleteStep handles POST /api/v1/orders/complete - reports the current
// workflow step of an order as done.
func (s *Server) CompleteStep(ctx echo.Context) error {
	var request CompleteStepRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.OrderIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteStepCommand(request.TenantID, orderID, request.CompletedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, err := s.completeStepHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SignalResponse{
		OrderID:     snapshot.OrderID,
		TenantID:    snapshot.TenantID,
		Status:      snapshot.Status,
		CompletedBy: cmd.CompletedBy(),
		Timestamp:   time.Now().UTC(),
	})
}

// CancelOrder handles POST /api/v1/orders/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var request CancelOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.OrderIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(request.TenantID, orderID, request.CancelledBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SignalResponse{
		OrderID:     snapshot.OrderID,
		TenantID:    snapshot.TenantID,
		Status:      snapshot.Status,
		CompletedBy: cmd.CancelledBy(),
		Timestamp:   time.Now().UTC(),
	})
}

// GetOrders handles GET /api/v1/orders - lists orders with optional
// tenantId and userId filters.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetOrdersQuery(
		ctx.QueryParam("tenantId"),
		ctx.QueryParam("userId"),
	)

	snapshots, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshots)
}

// GetProfile handles GET /api/v1/profile. The user is resolved from the
// bearer identity when present, otherwise from the userId query parameter.
func (s *Server) GetProfile(ctx echo.Context) error {
	userID := identityFrom(ctx)
	if userID == "" {
		userID = ctx.QueryParam("userId")
	}

	query, err := queries.NewGetProfileQuery(userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	response, err := s.getProfileHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// SaveAddress handles POST /api/v1/profile - appends an address to the
// customer's profile.
func (s *Server) SaveAddress(ctx echo.Context) error {
	var request SaveAddressRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	userID := identityFrom(ctx)
	if userID == "" {
		userID = request.UserID
	}

	label := request.Address.Label
	if label == "" {
		label = request.Name
	}

	address, err := customer.NewAddress(label, request.Address.FullAddress)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSaveAddressCommand(userID, request.Name, address)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.saveAddressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// writeError maps application errors onto status codes. Token mismatches
// are conflicts so callers can tell a racing signal from a missing order.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrTokenMismatch):
		return ctx.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
