// Package http provides the account HTTP handlers: sign-up, activation, password
// reset and the authenticated profile endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/account/http/dto"
	accountUseCase "github.com/allisson/accounts/internal/account/usecase"
	authHTTP "github.com/allisson/accounts/internal/auth/http"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/httputil"
)

// AccountHandler handles account lifecycle requests.
type AccountHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	presenter      *dto.AccountPresenter
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(
	accountUseCase accountUseCase.AccountUseCase,
	presenter *dto.AccountPresenter,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		presenter:      presenter,
		logger:         logger,
	}
}

// SignUpHandler creates an account and returns it with its bearer token.
// POST /v1/sign-up - Returns 201 Created.
func (h *AccountHandler) SignUpHandler(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	output, err := h.accountUseCase.SignUp(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response, err := h.presenter.Present(c.Request.Context(), output.Account, output.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ActivateHandler consumes an activation link.
// GET /v1/activate/:uuid/:token
func (h *AccountHandler) ActivateHandler(c *gin.Context) {
	accountID, ok := h.linkAccountID(c)
	if !ok {
		return
	}

	if err := h.accountUseCase.Activate(c.Request.Context(), accountID, c.Param("token")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.RespondMessage(c, domain.CodeActivated)
}

// ResendActivationHandler sends a new activation link.
// POST /v1/resend-activation/:uuid
func (h *AccountHandler) ResendActivationHandler(c *gin.Context) {
	accountID, ok := h.linkAccountID(c)
	if !ok {
		return
	}

	if err := h.accountUseCase.ResendActivation(c.Request.Context(), accountID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.RespondMessage(c, domain.CodeActivationSent)
}

// RequestPasswordResetHandler sends a reset link.
// POST /v1/reset-password
func (h *AccountHandler) RequestPasswordResetHandler(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.accountUseCase.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.RespondMessage(c, domain.CodePasswordReset)
}

// ValidateResetTokenHandler checks a reset link without consuming it.
// GET /v1/reset-password/:uuid/:token
func (h *AccountHandler) ValidateResetTokenHandler(c *gin.Context) {
	accountID, ok := h.linkAccountID(c)
	if !ok {
		return
	}

	if err := h.accountUseCase.ValidateResetToken(c.Request.Context(), accountID, c.Param("token")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.RespondMessage(c, domain.CodeTokenValid)
}

// SetPasswordHandler stores a new password behind a reset link. The link is
// checked before the body is read.
// POST /v1/set-password/:uuid/:token
func (h *AccountHandler) SetPasswordHandler(c *gin.Context) {
	accountID, ok := h.linkAccountID(c)
	if !ok {
		return
	}

	token := c.Param("token")
	if err := h.accountUseCase.ValidateResetToken(c.Request.Context(), accountID, token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.SetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	err := h.accountUseCase.SetPassword(c.Request.Context(), accountID, token, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.RespondMessage(c, domain.CodePasswordSet)
}

// ChangePasswordHandler replaces the caller's password.
// POST /v1/change-password - Requires AuthenticationMiddleware.
func (h *AccountHandler) ChangePasswordHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.accountUseCase.ChangePassword(c.Request.Context(), account, req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.RespondMessage(c, domain.CodePasswordChanged)
}

// UpdateDetailsHandler changes the caller's name and email.
// POST /v1/update-details - Requires AuthenticationMiddleware.
func (h *AccountHandler) UpdateDetailsHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	updated, err := h.accountUseCase.UpdateDetails(c.Request.Context(), account, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response, err := h.presenter.Present(c.Request.Context(), updated, "")
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

// linkAccountID parses the :uuid parameter of a link. A malformed id is reported
// like an unknown one.
func (h *AccountHandler) linkAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrUserInvalid, h.logger)
		return uuid.Nil, false
	}
	return accountID, true
}
