package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sportify-backend/internal/domains/payment/model"
	"sportify-backend/internal/domains/payment/service"
	res "sportify-backend/internal/shared/response"
	"sportify-backend/pkg/logger"
)

type PaymentHandler struct {
	orderService        service.OrderService
	verificationService service.VerificationService
	now                 func() time.Time
}

// NewPaymentHandler creates new payment handler
func NewPaymentHandler(
	orderService service.OrderService,
	verificationService service.VerificationService,
) *PaymentHandler {
	return &PaymentHandler{
		orderService:        orderService,
		verificationService: verificationService,
		now:                 time.Now,
	}
}

// =====================================================
// ORDER INITIATION
// =====================================================

// CreateOrder creates a gateway order
// POST /functions/v1/create-razorpay-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	// Step 1: Configuration comes before the body
	if !h.orderService.Configured() {
		logger.Error("order creation rejected", model.ErrMissingCredentials)
		h.orderError(c, model.NewConfigurationError(model.ErrMissingCredentials))
		return
	}

	// Step 2: Bind request body
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.orderError(c, model.NewInvalidRequestError(err))
		return
	}

	// Step 3: Call service
	order, err := h.orderService.CreateOrder(c.Request.Context(), req, c.GetHeader(model.HeaderIdempotencyKey))
	if err != nil {
		h.orderError(c, err)
		return
	}

	// Step 4: Return gateway order verbatim
	res.JSON(c, http.StatusOK, order)
}

func (h *PaymentHandler) orderError(c *gin.Context, err error) {
	statusCode, title := mapPaymentError(err)

	details := err.Error()
	var pe *model.PaymentError
	if errors.As(err, &pe) {
		details = pe.Message
	}

	res.JSON(c, statusCode, model.OrderErrorResponse{
		Error:     title,
		Details:   details,
		Timestamp: res.Timestamp(h.now()),
		Code:      model.ErrorCode(err),
	})
}

// =====================================================
// PAYMENT VERIFICATION
// =====================================================

// VerifyPayment checks the checkout signature
// POST /functions/v1/verify-razorpay-payment
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	if !h.verificationService.Configured() {
		logger.Error("payment verification rejected", model.ErrMissingSecret)
		h.verificationResult(c, model.InternalError(model.ReasonConfiguration, model.ErrMissingSecret))
		return
	}

	var req model.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("undecodable verification body", err)
		h.verificationResult(c, model.InternalError(model.ReasonInternal, err))
		return
	}

	h.verificationResult(c, h.verificationService.Verify(c.Request.Context(), req))
}

func (h *PaymentHandler) verificationResult(c *gin.Context, result model.VerificationResult) {
	res.JSON(c, result.StatusCode(), result.Response())
}

// =====================================================
// ERROR MAPPING
// =====================================================

// mapPaymentError maps a service error to HTTP status and the top-level error string
func mapPaymentError(err error) (int, string) {
	switch model.ErrorCode(err) {
	case model.ErrCodeInvalidRequest:
		return http.StatusBadRequest, model.ErrorInvalidRequest
	case model.ErrCodeIdempotencyConflict, model.ErrCodeIdempotencyInProgress:
		return http.StatusConflict, model.ErrorIdempotencyUsed
	case model.ErrCodeGatewayTimeout:
		return http.StatusGatewayTimeout, model.ErrorGatewayTimeout
	default:
		// PAY_CONFIG, PAY_GATEWAY and PAY_INTERNAL keep the historical 500 shape.
		return http.StatusInternalServerError, model.ErrorOrderCreation
	}
}
