package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/user_account_service/internal/core/domain"
	"github.com/SscSPs/user_account_service/internal/middleware"
	"github.com/SscSPs/user_account_service/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// tokenCookies writes and clears the token cookies using one set of options,
// so a clear always targets the cookie that was set.
type tokenCookies struct {
	opts config.CookieOptions
}

func (t tokenCookies) set(c *gin.Context, pair *domain.TokenPair) {
	now := time.Now()
	t.write(c, middleware.AccessTokenCookie, pair.AccessToken, maxAge(pair.AccessTokenExpiresAt, now))
	t.write(c, middleware.RefreshTokenCookie, pair.RefreshToken, maxAge(pair.RefreshTokenExpiresAt, now))
}

func (t tokenCookies) clear(c *gin.Context) {
	t.write(c, middleware.AccessTokenCookie, "", -1)
	t.write(c, middleware.RefreshTokenCookie, "", -1)
}

func (t tokenCookies) write(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     t.opts.Path,
		Domain:   t.opts.Domain,
		MaxAge:   maxAge,
		HttpOnly: t.opts.HTTPOnly,
		Secure:   t.opts.Secure,
		SameSite: t.opts.SameSite,
	})
}

func maxAge(expiresAt, now time.Time) int {
	secs := int(expiresAt.Sub(now).Seconds())
	if secs <= 0 {
		return -1
	}
	return secs
}
