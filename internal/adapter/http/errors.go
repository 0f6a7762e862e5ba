package http

import (
	"errors"
	"net/http"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/logging"
	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto the wire contract: a status code and a
// stable {"error": "<code>"} body the client switches on.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		status, code = http.StatusBadRequest, "empty_cart"
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code = http.StatusBadRequest, "invalid_quantity"
	case errors.Is(err, domain.ErrGatewayConfigMissing):
		status, code = http.StatusBadRequest, "card_not_configured"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrOutOfStock):
		status, code = http.StatusConflict, "out_of_stock"
	case errors.Is(err, domain.ErrAlreadyConfirmed):
		status, code = http.StatusConflict, "already_confirmed"
	case errors.Is(err, domain.ErrGatewayUnavailable):
		status, code = http.StatusBadGateway, "gateway_unavailable"
	}

	if status == http.StatusInternalServerError {
		logging.From(c).Error("request failed", "err", err)
	}
	c.JSON(status, gin.H{"error": code})
}
