// Package http provides the inbound HTTP adapter: table session endpoints,
// cart operations, order submission, delivery tracking events and the
// route-guard middleware.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tableorder/internal/core/application/usecases/commands"
	"tableorder/internal/core/application/usecases/queries"
	"tableorder/internal/core/domain/model/cart"
	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/core/domain/model/session"
	"tableorder/internal/core/domain/model/tablesession"
	"tableorder/internal/core/ports"
	"tableorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// accessTokenCookie is the cookie carrying the session credential. The
// token is minted by the external identity service; this server only
// verifies it.
const accessTokenCookie = "accessToken"

// apiError is the JSON error body returned by every endpoint.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	sessions ports.TableSessionStore
	decoder  session.TokenDecoder
	logger   *slog.Logger

	submitOrderHandler    commands.SubmitOrderCommandHandler
	recordDeliveryHandler commands.RecordDeliveryCommandHandler
	appendVersionHandler  commands.AppendOrderVersionCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler

	deliveryStateHandler queries.GetDeliveryStateQueryHandler
}

// NewServer creates an HTTP server with the required stores and handlers.
func NewServer(
	sessions ports.TableSessionStore,
	decoder session.TokenDecoder,
	logger *slog.Logger,
	submitOrderHandler commands.SubmitOrderCommandHandler,
	recordDeliveryHandler commands.RecordDeliveryCommandHandler,
	appendVersionHandler commands.AppendOrderVersionCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	deliveryStateHandler queries.GetDeliveryStateQueryHandler,
) *Server {
	return &Server{
		sessions:              sessions,
		decoder:               decoder,
		logger:                logger.With("component", "http"),
		submitOrderHandler:    submitOrderHandler,
		recordDeliveryHandler: recordDeliveryHandler,
		appendVersionHandler:  appendVersionHandler,
		cancelOrderHandler:    cancelOrderHandler,
		deliveryStateHandler:  deliveryStateHandler,
	}
}

// RegisterRoutes binds the API endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/sessions", s.OpenSession)
	api.GET("/sessions/:token/cart", s.GetCart)
	api.POST("/sessions/:token/cart/items", s.AddCartItem)
	api.PUT("/sessions/:token/cart/items", s.SetCartItemQuantity)
	api.DELETE("/sessions/:token/cart", s.ClearCart)
	api.POST("/sessions/:token/orders", s.SubmitOrder)

	api.POST("/events", s.HandleEvent)
	api.GET("/orders/:id/delivery", s.GetDeliveryState)
}

type openSessionRequest struct {
	TableNumber int `json:"table_number"`
}

type openSessionResponse struct {
	Token       string    `json:"token"`
	TableNumber int       `json:"table_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// OpenSession handles POST /api/v1/sessions. It opens a session for a
// table and returns the token the table uses for all cart operations.
func (s *Server) OpenSession(ctx echo.Context) error {
	var body openSessionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	tableNumber, err := kernel.NewTableNumber(body.TableNumber)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	tableSession, err := tablesession.NewTableSession(tableNumber, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.sessions.Add(ctx.Request().Context(), tableSession); err != nil {
		return internalError(ctx, "failed to open session")
	}

	return ctx.JSON(http.StatusCreated, openSessionResponse{
		Token:       tableSession.Token().String(),
		TableNumber: tableSession.TableNumber().Int(),
		CreatedAt:   tableSession.CreatedAt(),
	})
}

type cartItemRequest struct {
	Kind      string `json:"kind"`
	ItemID    int64  `json:"item_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type cartLineResponse struct {
	Kind      string `json:"kind"`
	ItemID    int64  `json:"item_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

type cartResponse struct {
	Lines      []cartLineResponse `json:"lines"`
	TotalItems int                `json:"total_items"`
	TotalPrice int64              `json:"total_price"`
}

// GetCart handles GET /api/v1/sessions/:token/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	tableSession, err := s.loadSession(ctx)
	if err != nil {
		return sessionError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartToResponse(tableSession.Cart()))
}

// AddCartItem handles POST /api/v1/sessions/:token/cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	tableSession, err := s.loadSession(ctx)
	if err != nil {
		return sessionError(ctx, err)
	}

	var body cartItemRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	kind, err := cart.ItemKindFromString(body.Kind)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	unitPrice, err := kernel.NewPrice(body.UnitPrice)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	quantity := body.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if err = tableSession.Cart().AddItemWithQuantity(kind, body.ItemID, quantity, unitPrice); err != nil {
		return badRequest(ctx, err.Error())
	}

	tableSession.Touch(time.Now().UTC())
	return ctx.JSON(http.StatusOK, cartToResponse(tableSession.Cart()))
}

// SetCartItemQuantity handles PUT /api/v1/sessions/:token/cart/items.
// A quantity of zero or less removes the line.
func (s *Server) SetCartItemQuantity(ctx echo.Context) error {
	tableSession, err := s.loadSession(ctx)
	if err != nil {
		return sessionError(ctx, err)
	}

	var body cartItemRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	kind, err := cart.ItemKindFromString(body.Kind)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = tableSession.Cart().SetQuantity(kind, body.ItemID, body.Quantity); err != nil {
		return badRequest(ctx, err.Error())
	}

	tableSession.Touch(time.Now().UTC())
	return ctx.JSON(http.StatusOK, cartToResponse(tableSession.Cart()))
}

// ClearCart handles DELETE /api/v1/sessions/:token/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	tableSession, err := s.loadSession(ctx)
	if err != nil {
		return sessionError(ctx, err)
	}

	tableSession.Cart().Clear()
	tableSession.Touch(time.Now().UTC())
	return ctx.NoContent(http.StatusNoContent)
}

type submitOrderRequest struct {
	BowChili    int  `json:"bow_chili"`
	BowNoChili  int  `json:"bow_no_chili"`
	TakeAway    bool `json:"takeAway"`
	ChiliNumber int  `json:"chiliNumber"`
}

type submitOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

// SubmitOrder handles POST /api/v1/sessions/:token/orders. The submitter's
// identity comes from the accessToken cookie; anonymous visitors are turned
// away before any order service call.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	token, err := s.sessionToken(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body submitOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	extras, err := orderExtras(body)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSubmitOrderCommand(token, s.identity(ctx), extras)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.submitError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, submitOrderResponse{OrderID: orderID})
}

// GetDeliveryState handles GET /api/v1/orders/:id/delivery.
func (s *Server) GetDeliveryState(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetDeliveryStateQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	state, err := s.deliveryStateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "order is not tracked")
		}
		return internalError(ctx, "failed to load delivery state")
	}

	return ctx.JSON(http.StatusOK, state)
}

func (s *Server) submitError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrRequiresLogin):
		return ctx.JSON(http.StatusUnauthorized, apiError{
			Code:    http.StatusUnauthorized,
			Message: "login is required to submit an order",
		})
	case errors.Is(err, commands.ErrAlreadySubmitting):
		return ctx.JSON(http.StatusConflict, apiError{
			Code:    http.StatusConflict,
			Message: "an order submission is already in flight",
		})
	case errors.Is(err, ports.ErrOrderRejected):
		return badRequest(ctx, err.Error())
	case errors.Is(err, ports.ErrOrderServiceUnavailable):
		return ctx.JSON(http.StatusBadGateway, apiError{
			Code:    http.StatusBadGateway,
			Message: "order service is unavailable",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "unknown session token")
	default:
		return badRequest(ctx, err.Error())
	}
}

// identity resolves the submitter's identity from the accessToken cookie.
// Missing or invalid credentials yield the anonymous identity, never an
// error: the submission flow decides what anonymity means.
func (s *Server) identity(ctx echo.Context) session.Identity {
	cookie, err := ctx.Cookie(accessTokenCookie)
	if err != nil || cookie.Value == "" {
		return session.Anonymous()
	}

	claims, err := s.decoder.Decode(cookie.Value)
	if err != nil {
		s.logger.Debug("credential rejected", "error", err)
		return session.Anonymous()
	}

	identity, err := session.IdentityFromClaims(claims)
	if err != nil {
		return session.Anonymous()
	}
	return identity
}

func (s *Server) sessionToken(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("token"))
}

func (s *Server) loadSession(ctx echo.Context) (*tablesession.TableSession, error) {
	token, err := s.sessionToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx.Request().Context(), token)
}

func sessionError(ctx echo.Context, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return notFound(ctx, "unknown session token")
	}
	return badRequest(ctx, err.Error())
}

func cartToResponse(c *cart.Cart) cartResponse {
	summary := c.Summary()
	lines := make([]cartLineResponse, 0, len(summary.Dishes)+len(summary.Sets))
	for _, line := range summary.Dishes {
		lines = append(lines, cartLineResponse{
			Kind:      cart.ItemKindDish.String(),
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.Amount(),
			Subtotal:  line.UnitPrice.Amount() * int64(line.Quantity),
		})
	}
	for _, line := range summary.Sets {
		lines = append(lines, cartLineResponse{
			Kind:      cart.ItemKindSet.String(),
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.Amount(),
			Subtotal:  line.UnitPrice.Amount() * int64(line.Quantity),
		})
	}

	return cartResponse{
		Lines:      lines,
		TotalItems: summary.TotalItems,
		TotalPrice: summary.TotalPrice.Amount(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, apiError{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, apiError{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, apiError{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
