package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/accounts/internal/account/http/dto"
	accountUseCase "github.com/allisson/accounts/internal/account/usecase"
	authHTTP "github.com/allisson/accounts/internal/auth/http"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/httputil"
)

// EventHandler exposes the caller's account event log.
type EventHandler struct {
	eventUseCase accountUseCase.EventUseCase
	logger       *slog.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventUseCase accountUseCase.EventUseCase, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
		logger:       logger,
	}
}

// ListHandler returns a page of the caller's events, newest first.
// GET /v1/events?offset=0&limit=20 - Requires AuthenticationMiddleware.
func (h *EventHandler) ListHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	page, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, err := h.eventUseCase.List(c.Request.Context(), account.ID, page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}
