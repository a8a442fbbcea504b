package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/infrastructure/logger"
	"github.com/shopdesk/backoffice/internal/interfaces/http/dto"
	"github.com/shopdesk/backoffice/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error envelope with the given status
func (h *BaseHandler) Error(c *gin.Context, status int, resp dto.Response) {
	middleware.RecordErrorCode(c, resp)
	c.JSON(status, resp)
}

// BadRequest sends a 400 BAD_REQUEST response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message, middleware.GetRequestID(c)))
}

// HandleError converts err into a response. Domain errors map by kind;
// anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var de *shared.DomainError
	if errors.As(err, &de) && de.Kind != shared.KindInternal {
		h.Error(c, dto.HTTPStatusForKind(de.Kind), dto.NewErrorResponseWithDetails(de.Code, de.Message, requestID, de.Details))
		return
	}

	logger.GetGinLogger(c).Error("request failed", zap.Error(err))
	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred", requestID))
}

// bindJSON decodes the body into req and answers 400 on failure.
// It reports whether the handler should continue.
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	requestID := middleware.GetRequestID(c)
	if details := middleware.ValidationDetails(err); details != nil {
		h.Error(c, http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", requestID, details))
		return false
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		h.Error(c, http.StatusRequestEntityTooLarge, dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size", requestID))
	case errors.Is(err, io.EOF):
		h.Error(c, http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, "Request body is required", requestID))
	default:
		h.Error(c, http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid JSON body: "+err.Error(), requestID))
	}
	return false
}

// pathID parses a positive integer path parameter and answers 400 when it is not one
func (h *BaseHandler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "Invalid "+name+": must be a positive integer")
		return 0, false
	}
	return id, true
}
