package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/user_account_service/internal/dto"
	"github.com/SscSPs/user_account_service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Cookie names shared by the login, refresh and logout handlers.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// AuthMiddleware creates a Gin middleware handler that validates access tokens
// taken from the accessToken cookie or an "Authorization: Bearer" header.
func AuthMiddleware(accessTokenSecret string, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := extractAccessToken(c)
		if !ok {
			logger.Warn("Access token missing")
			abortUnauthorized(c, "unauthorized request")
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, accessTokenSecret, issuer)
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			msg := "invalid access token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "access token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "access token not valid yet"
			}
			abortUnauthorized(c, msg)
			return
		}

		ctx := WithUserID(c.Request.Context(), claims.Subject)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", claims.Subject)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractAccessToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIResponse(http.StatusUnauthorized, nil, msg))
}
