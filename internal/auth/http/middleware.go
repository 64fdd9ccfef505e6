package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/httputil"
)

// AuthenticationMiddleware resolves the Authorization header into an account.
//
// Accepted formats are "Bearer <key>" and "Token <key>", scheme case-insensitive.
// Every authentication failure answers 401; coded failures keep their code in the
// body (TOKEN_INVALID, USER_INACTIVE).
//
// Usage:
//
//	router.POST("/v1/sign-out", AuthenticationMiddleware(sessionUseCase, logger), handler.SignOutHandler)
func AuthenticationMiddleware(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := parseAuthorization(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		account, err := sessionUseCase.Authenticate(c.Request.Context(), key)
		if err != nil {
			if code := apperrors.Code(err); code != "" {
				logger.Debug("authentication failed", slog.String("code", code))
				c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.MessageResponse{Message: code})
				return
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithAccount(c.Request.Context(), account))

		logger.Debug("authentication successful", slog.String("account_id", account.ID.String()))
		c.Next()
	}
}

// parseAuthorization extracts the key from a Bearer or Token authorization header.
func parseAuthorization(header string) (string, bool) {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, authDomain.SchemeBearer) && !strings.EqualFold(scheme, authDomain.SchemeToken) {
		return "", false
	}

	key = strings.TrimSpace(key)
	return key, key != ""
}
