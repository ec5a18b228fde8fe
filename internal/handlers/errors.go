package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-sync-service/internal/clients"
	"catalog-sync-service/internal/logging"
	"catalog-sync-service/internal/repository"
)

// errorResponse writes the stable {error, message} body
func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":   http.StatusText(status),
		"message": message,
	})
}

// handleError maps service errors onto HTTP statuses
func handleError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, clients.ErrRemoteNotFound) {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	logging.FromContext(c.Request.Context()).WithError(err).Error("request failed")
	errorResponse(c, http.StatusInternalServerError, err.Error())
}

// positiveInt parses a strictly positive integer
func positiveInt(raw string) (int, bool) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// idParam reads a positive integer path parameter, answering 400 otherwise
func idParam(c *gin.Context, name string) (int, bool) {
	id, ok := positiveInt(c.Param(name))
	if !ok {
		errorResponse(c, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
