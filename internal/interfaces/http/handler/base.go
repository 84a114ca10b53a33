// Package handler contains the gin handlers of the HTTP API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/logger"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/dto"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// HandleError converts service errors to HTTP responses. Errors outside
// the domain taxonomy are logged and answered with a bare 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	status, body, known := dto.ErrorFor(err)
	if !known {
		logger.L(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, body)
}

// session returns the session resolved by the auth middleware. Routes
// without the middleware get ErrNotAuthenticated.
func (h *BaseHandler) session(c *gin.Context) (*identity.Session, error) {
	s, ok := middleware.GetSession(c)
	if !ok {
		return nil, shared.ErrNotAuthenticated
	}
	return s, nil
}
