package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/cutiefy/pos-api/internal/application/service"
	"github.com/cutiefy/pos-api/internal/domain/enum"
	"github.com/cutiefy/pos-api/internal/presentation/http/dto/request"
	"github.com/cutiefy/pos-api/internal/presentation/http/dto/response"
)

// BillingHandler handles billing session and checkout HTTP requests
type BillingHandler struct {
	sessions        *service.SessionManager
	cartService     *service.CartService
	checkoutService *service.CheckoutService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(sessions *service.SessionManager, cartService *service.CartService, checkoutService *service.CheckoutService) *BillingHandler {
	return &BillingHandler{
		sessions:        sessions,
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// StartSession opens a new billing session
func (h *BillingHandler) StartSession(c *gin.Context) {
	var req request.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session := h.sessions.Start(service.Customer{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
	})

	response.Created(c, "Billing session started", session)
}

// GetSession returns the session with its current cart
func (h *BillingHandler) GetSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, "Session retrieved successfully", session)
}

// EndSession cancels a session without settling it
func (h *BillingHandler) EndSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	h.sessions.End(session.ID)
	response.NoContent(c)
}

// AddToCart adds an item to the session's cart
func (h *BillingHandler) AddToCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req request.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.cartService.AddToCart(c.Request.Context(), session, req.ItemID, req.Quantity); err != nil {
		h.stockError(c, err)
		return
	}

	response.OK(c, "Item added to cart", session)
}

// RemoveFromCart removes a cart line by its position
func (h *BillingHandler) RemoveFromCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.BadRequest(c, "Invalid line index")
		return
	}

	h.cartService.RemoveFromCart(session, index)
	response.OK(c, "Item removed from cart", session)
}

// Checkout settles the session's cart into a sale
func (h *BillingHandler) Checkout(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.checkoutService.Settle(c.Request.Context(), session, service.CheckoutInput{
		DiscountKind:   enum.ParseDiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		DeliveryCharge: req.DeliveryCharge,
	})
	if err != nil {
		h.stockError(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", result)
}

// session resolves the :session_id path parameter. On failure it writes
// the error response and returns ok=false.
func (h *BillingHandler) session(c *gin.Context) (*service.CartSession, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return nil, false
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		response.NotFound(c, "Billing session not found")
		return nil, false
	}
	return session, true
}

// stockError maps the typed cart and settlement errors to HTTP statuses.
// Stock conflicts carry their numbers so the client can show exactly how
// many units remain addable.
func (h *BillingHandler) stockError(c *gin.Context, err error) {
	var outOfStock *service.OutOfStockError
	if errors.As(err, &outOfStock) {
		response.ErrorWithDetails(c, 409, outOfStock.Error(), gin.H{
			"item_id": outOfStock.ItemID,
			"in_cart": outOfStock.InCart,
			"can_add": outOfStock.CanAdd,
		})
		return
	}

	var insufficient *service.InsufficientStockError
	if errors.As(err, &insufficient) {
		response.ErrorWithDetails(c, 409, insufficient.Error(), gin.H{
			"item_id":   insufficient.ItemID,
			"requested": insufficient.Requested,
			"available": insufficient.Available,
		})
		return
	}

	var removed *service.ItemRemovedError
	if errors.As(err, &removed) {
		response.ErrorWithDetails(c, 409, removed.Error(), gin.H{
			"item_id": removed.ItemID,
		})
		return
	}

	if errors.Is(err, service.ErrEmptyCart) {
		response.BadRequest(c, err.Error())
		return
	}

	var persistence *service.PersistenceError
	if errors.As(err, &persistence) {
		response.InternalServerError(c, "Failed to record the sale. Please retry.")
		return
	}

	response.Error(c, err)
}
