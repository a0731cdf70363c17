// Package handler holds the gin handlers of the ERP API.
package handler

import (
	"net/http"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/logger"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/dto"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 with the generic bad request code
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message, middleware.GetRequestID(c)))
}

// BindError sends a 400 describing a failed binding
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// Error maps err onto the error envelope. Server-side failures are logged
// with the request logger; their message never reaches the client.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	status, body := dto.FromError(err, middleware.GetRequestID(c))
	if status >= http.StatusInternalServerError {
		logger.GetGinLogger(c).Error("request failed", zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, body)
}

// Actor returns the acting user or writes a 401 and reports false.
func (h *BaseHandler) Actor(c *gin.Context) (uuid.UUID, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized,
			middleware.HeaderUserID+" header is required", middleware.GetRequestID(c)))
		return uuid.Nil, false
	}
	return actor, true
}

// ParamID parses the path parameter name as a UUID or writes a 400.
func (h *BaseHandler) ParamID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// QueryID parses an optional UUID query parameter. An absent parameter yields nil.
func (h *BaseHandler) QueryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+": must be a UUID")
		return nil, false
	}
	return &id, true
}

// ListQuery binds the paging parameters into a repository filter
func (h *BaseHandler) ListQuery(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return shared.Filter{}, false
	}
	return req.ToFilter(), true
}

func page[T any](c *gin.Context, result *shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPageResponse(result))
}
