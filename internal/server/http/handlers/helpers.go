package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/server/http/dto"
)

// writeError maps domain failures to hook responses.
func writeError(c *gin.Context, err error) {
	var v *domainErrors.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: v.Message, Field: v.Field})
	case errors.Is(err, domainErrors.ErrBusy):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrEditorClosed),
		errors.Is(err, domainErrors.ErrItemIndex):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrUnknownProduct):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Field: "product_id"})
	default:
		if re, ok := domainErrors.AsRequestError(err); ok {
			status := re.Status
			if status == 0 {
				status = http.StatusBadGateway
			}
			c.JSON(status, dto.ErrorResponse{Error: re.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

// loadFailed reports whether a load error must fail the hook call. Backend
// failures and superseded responses are already reflected in view state.
func loadFailed(err error) bool {
	if err == nil || errors.Is(err, domainErrors.ErrSuperseded) {
		return false
	}
	_, ok := domainErrors.AsRequestError(err)
	return !ok
}
