package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/user_account_service/internal/apperrors"
	"github.com/SscSPs/user_account_service/internal/dto"
	"github.com/SscSPs/user_account_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, dto.NewAPIResponse(status, data, message))
}

// respondError maps service errors onto the response envelope. Messages of
// AppErrors are client-safe; anything else is logged and replaced.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		respond(c, http.StatusInternalServerError, nil, "internal server error")
		return
	}

	if appErr.Code >= http.StatusInternalServerError {
		logger.Error(appErr.Message, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", appErr.Code), slog.String("reason", appErr.Message))
	}
	respond(c, appErr.Code, nil, appErr.Message)
}
