package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	payUC "melodia/internal/application/payment/usecases"
	"melodia/internal/domain/payment"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/utils"
)

type PaymentHandler struct {
	createOrderUC *payUC.CreateOrderUseCase
	verifyUC      *payUC.VerifyPaymentUseCase
	getUC         *payUC.GetPaymentUseCase
	logger        logger.Interface
}

func NewPaymentHandler(
	createOrderUC *payUC.CreateOrderUseCase,
	verifyUC *payUC.VerifyPaymentUseCase,
	getUC *payUC.GetPaymentUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		createOrderUC: createOrderUC,
		verifyUC:      verifyUC,
		getUC:         getUC,
		logger:        logger,
	}
}

type createOrderRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type paymentResponse struct {
	SID             string    `json:"sid"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	PlanID          string    `json:"plan_id"`
	RazorpayOrderID string    `json:"razorpay_order_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func toPaymentResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		SID:             p.SID(),
		Amount:          p.Amount(),
		Currency:        p.Currency(),
		Status:          string(p.Status()),
		PlanID:          p.PlanID(),
		RazorpayOrderID: p.RazorpayOrderID(),
		CreatedAt:       p.CreatedAt(),
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createOrderUC.Execute(c.Request.Context(), payUC.CreateOrderCommand{
		UserSID: userSID(c),
		PlanID:  req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Checkout payload: the frontend hands these straight to the gateway
	// widget.
	utils.CreatedResponse(c, gin.H{
		"payment":  toPaymentResponse(result.Payment),
		"order_id": result.Order.ID,
		"amount":   result.Order.Amount,
		"currency": result.Order.Currency,
		"key_id":   result.KeyID,
		"name":     result.UserName,
		"email":    result.Email,
		"plan":     toPlanResponse(result.Plan),
	}, "order created")
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.verifyUC.Execute(c.Request.Context(), payUC.VerifyPaymentCommand{
		UserSID:           userSID(c),
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"payment":      toPaymentResponse(result.Payment),
		"subscription": toSubscriptionResponse(result.Subscription),
		"plan":         toPlanResponse(result.Plan),
	})
}

func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.getUC.Execute(c.Request.Context(), payUC.GetPaymentCommand{
		UserSID:    userSID(c),
		PaymentSID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, toPaymentResponse(p))
}
