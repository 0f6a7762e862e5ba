package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cfarhan/shopping/internal/adapter/http/middleware"
	"github.com/cfarhan/shopping/internal/usecase"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	intents *usecase.PaymentIntents
}

func NewPaymentHandler(intents *usecase.PaymentIntents) *PaymentHandler {
	return &PaymentHandler{intents: intents}
}

// StripeConfig publishes the gateway public key. The key is null when card
// payments are not configured, which the client treats as "method disabled".
func (h *PaymentHandler) StripeConfig(c *gin.Context) {
	var pk *string
	if k := h.intents.PublicKey(); k != "" {
		pk = &k
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": pk})
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	intent, err := h.intents.CreateIntent(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_secret": intent.ClientSecret,
		"order_id":      intent.OrderID,
	})
}

type confirmPaymentReq struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

// ConfirmPayment finalizes the order after the gateway reported success.
// It is idempotent: replays get already_confirmed instead of a second flip.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.intents.Confirm(ctx, middleware.UserID(c), req.PaymentIntentID)
	if err != nil {
		middleware.CountCheckout("gateway_card", "failed")
		writeError(c, err)
		return
	}

	middleware.CountCheckout("gateway_card", "succeeded")
	c.JSON(http.StatusOK, gin.H{"order": order})
}
