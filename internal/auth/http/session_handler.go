package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	accountDTO "github.com/allisson/accounts/internal/account/http/dto"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/auth/http/dto"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/httputil"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// SessionHandler handles sign-in, token authentication and sign-out.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	presenter      *accountDTO.AccountPresenter
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	sessionUseCase authUseCase.SessionUseCase,
	presenter *accountDTO.AccountPresenter,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		presenter:      presenter,
		logger:         logger,
	}
}

// SignInHandler checks email and password and returns the account with its token.
// POST /v1/sign-in
func (h *SessionHandler) SignInHandler(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	session, err := h.sessionUseCase.SignIn(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response, err := h.presenter.Present(c.Request.Context(), session.Account, session.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AuthenticateHandler resolves a token from the body and returns its account.
// POST /v1/authenticate
func (h *SessionHandler) AuthenticateHandler(c *gin.Context) {
	var req dto.AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	key := strings.TrimSpace(req.Token)
	if key == "" {
		httputil.HandleErrorGin(c, apperrors.NewValidationError("token", customValidation.MsgRequired), h.logger)
		return
	}

	account, err := h.sessionUseCase.Authenticate(c.Request.Context(), key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response, err := h.presenter.Present(c.Request.Context(), account, "")
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SignOutHandler revokes the caller's token.
// POST /v1/sign-out - Requires AuthenticationMiddleware.
func (h *SessionHandler) SignOutHandler(c *gin.Context) {
	account, ok := GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.sessionUseCase.SignOut(c.Request.Context(), account); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.RespondMessage(c, authDomain.CodeSignedOut)
}
