package http

import (
	"context"
	"log/slog"
	"net/http"

	"ordertracking/internal/core/application/usecases/commands"
	"ordertracking/internal/core/application/usecases/queries"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Use-case ports of the HTTP server. The command and query handlers satisfy them.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (order.Snapshot, error)
	}

	StatusChanger interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (order.Snapshot, commands.Result, error)
	}

	DeliveryVerifier interface {
		Handle(ctx context.Context, cmd commands.VerifyDeliveryCodeCommand) (order.Snapshot, commands.Result, error)
	}

	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (order.Snapshot, error)
	}

	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]order.Snapshot, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  OrderCreator
	changeStatusHandler StatusChanger
	verifyCodeHandler   DeliveryVerifier

	// Query handlers
	getOrderHandler   OrderReader
	listOrdersHandler OrderLister

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler OrderCreator,
	changeStatusHandler StatusChanger,
	verifyCodeHandler DeliveryVerifier,
	getOrderHandler OrderReader,
	listOrdersHandler OrderLister,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		changeStatusHandler: changeStatusHandler,
		verifyCodeHandler:   verifyCodeHandler,
		getOrderHandler:     getOrderHandler,
		listOrdersHandler:   listOrdersHandler,
		logger:              logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/pedidos - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryType, err := order.ParseDeliveryType(string(newOrder.DeliveryType))
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cart := make([]commands.CartItem, len(newOrder.Items))
	for i, item := range newOrder.Items {
		cart[i] = commands.CartItem{
			ProductID:      item.ProductId,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}

	scheduledTime := ""
	if newOrder.ScheduledTime != nil {
		scheduledTime = *newOrder.ScheduledTime
	}

	cmd, err := commands.NewCreateOrderCommand(
		newOrder.RestaurantId,
		newOrder.Recipient,
		deliveryType,
		scheduledTime,
		cart,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	snapshot, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(snapshot))
}

// GetOrder handles GET /api/pedidos/:orderId - returns the current snapshot.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	query, err := queries.NewGetOrderQuery(order.ID(orderID))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(snapshot))
}

// ListOrders handles GET /api/restaurante/pedidos - the restaurant panel feed.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var (
		restaurantID string
		activeOnly   bool
		limit        int
	)
	if params.RestaurantId != nil {
		restaurantID = *params.RestaurantId
	}
	if params.Active != nil {
		activeOnly = *params.Active
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	snapshots, err := s.listOrdersHandler.Handle(
		ctx.Request().Context(),
		queries.NewListOrdersQuery(restaurantID, activeOnly, limit),
	)
	if err != nil {
		return s.writeError(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(snapshots))
	for i, snapshot := range snapshots {
		response[i] = toOrderResponse(snapshot)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PATCH /api/restaurante/pedidos/:orderId/status.
// A finished order answers 200 with its unchanged snapshot.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var change servers.StatusChange
	if err := ctx.Bind(&change); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(string(change.Status))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(order.ID(orderID), status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, _, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, "Failed to change order status")
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(snapshot))
}

// VerifyDeliveryCode handles POST /api/pedidos/:orderId/entregar.
func (s *Server) VerifyDeliveryCode(ctx echo.Context, orderID servers.OrderId) error {
	var input servers.DeliveryCodeInput
	if err := ctx.Bind(&input); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewVerifyDeliveryCodeCommand(order.ID(orderID), input.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	_, result, err := s.verifyCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, "Failed to verify delivery code")
	}

	switch result {
	case commands.ResultApplied:
		return ctx.JSON(http.StatusOK, servers.VerificationResult{Result: servers.Completed})
	case commands.ResultAlreadyCompleted:
		return ctx.JSON(http.StatusOK, servers.VerificationResult{Result: servers.AlreadyCompleted})
	case commands.ResultAlreadyTerminal:
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: "Order was cancelled",
		})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "unexpected verification result",
			"order_id", orderID, "result", result.String())
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to verify delivery code",
		})
	}
}

func toOrderResponse(snapshot order.Snapshot) servers.Order {
	items := make([]servers.OrderItem, len(snapshot.Items))
	for i, item := range snapshot.Items {
		items[i] = servers.OrderItem{
			ProductId:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents,
		}
	}

	response := servers.Order{
		Id:              int64(snapshot.ID),
		RestaurantId:    snapshot.RestaurantID,
		Status:          servers.OrderStatus(snapshot.Status.Code()),
		DeliveryType:    servers.DeliveryType(snapshot.DeliveryType.String()),
		TotalPriceCents: snapshot.TotalPriceCents,
		CreatedAt:       snapshot.CreatedAt,
		Items:           items,
	}
	if snapshot.ScheduledTime != "" {
		scheduled := snapshot.ScheduledTime
		response.ScheduledTime = &scheduled
	}

	return response
}
