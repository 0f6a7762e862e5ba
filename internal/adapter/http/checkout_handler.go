package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cfarhan/shopping/internal/adapter/http/middleware"
	"github.com/cfarhan/shopping/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	settle *usecase.Settle
}

func NewCheckoutHandler(settle *usecase.Settle) *CheckoutHandler {
	return &CheckoutHandler{settle: settle}
}

// Checkout settles the whole cart in a single request and clears it on
// success. This is the pre-gateway payment path.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.settle.Execute(ctx, middleware.UserID(c))
	if err != nil {
		middleware.CountCheckout("legacy", "failed")
		writeError(c, err)
		return
	}

	middleware.CountCheckout("legacy", "succeeded")
	c.JSON(http.StatusOK, gin.H{"order": order})
}
