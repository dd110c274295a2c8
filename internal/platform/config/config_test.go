package config_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/user_account_service/internal/core/domain"
	"github.com/SscSPs/user_account_service/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRY_DURATION", "15m")
	t.Setenv("REFRESH_TOKEN_EXPIRY_DURATION", "bogus")
	t.Setenv("COOKIE_SAME_SITE", "strict")
	t.Setenv("LOGIN_IDENTIFIER_POLICY", "both")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "access-secret", cfg.AccessTokenSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiryDuration)
	assert.Equal(t, 240*time.Hour, cfg.RefreshTokenExpiryDuration, "invalid duration falls back")
	assert.Equal(t, http.SameSiteStrictMode, cfg.Cookie.SameSite)
	assert.True(t, cfg.Cookie.HTTPOnly)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, domain.LoginPolicyRequireBoth, cfg.LoginIdentifierPolicy)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_RejectsSharedSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "same")
	t.Setenv("REFRESH_TOKEN_SECRET", "same")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestParseSameSite(t *testing.T) {
	mode, err := config.ParseSameSite("None")
	require.NoError(t, err)
	assert.Equal(t, http.SameSiteNoneMode, mode)

	mode, err = config.ParseSameSite("")
	require.NoError(t, err)
	assert.Equal(t, http.SameSiteDefaultMode, mode)

	_, err = config.ParseSameSite("sometimes")
	assert.Error(t, err)
}
