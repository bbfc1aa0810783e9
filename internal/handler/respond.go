package handler

import (
	"errors"
	"net/http"
	"strconv"

	"seedy/internal/pkg"
	"seedy/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps typed service errors onto HTTP statuses. Upstream API
// failures relay the status the remote returned; anything unrecognized is a
// 500 with a generic body.
func respondError(c *gin.Context, err error) {
	var upstream *pkg.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(upstream.StatusCode, gin.H{"error": upstream.Message})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	default:
		c.JSON(status, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func paramID(c *gin.Context, name string) uint64 {
	id, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return id
}

func queryInt(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}
