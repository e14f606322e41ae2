package handlers

import (
	"errors"
	"net/http"

	"kitarchive/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNotEligible):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrAlreadyVoted),
		errors.Is(err, services.ErrInvalidVote),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrAlreadyExists):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
