package config

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/user_account_service/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CookieOptions describes how token cookies are written and cleared.
type CookieOptions struct {
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
	Path     string
	Domain   string
}

// S3Config holds the object storage settings used for avatar and cover image uploads.
type S3Config struct {
	Region        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	KeyPrefix     string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	AccessTokenSecret          string
	AccessTokenExpiryDuration  time.Duration
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration
	JWTIssuer                  string

	Cookie                CookieOptions
	LoginIdentifierPolicy domain.LoginIdentifierPolicy
	AuthRateLimit         string
	CORSAllowedOrigins    []string
	UploadTempDir         string

	S3 S3Config

	PosthogAPIKey string
}

const (
	defaultAccessTokenSecret  = "a-very-secret-access-key-should-be-longer-and-random"
	defaultRefreshTokenSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("ACCESS_TOKEN_SECRET", defaultAccessTokenSecret)
	viper.SetDefault("ACCESS_TOKEN_EXPIRY_DURATION", "24h")
	viper.SetDefault("REFRESH_TOKEN_SECRET", defaultRefreshTokenSecret)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "240h")
	viper.SetDefault("JWT_ISSUER", "user-account-service")
	viper.SetDefault("COOKIE_HTTP_ONLY", true)
	viper.SetDefault("COOKIE_SECURE", true)
	viper.SetDefault("COOKIE_SAME_SITE", "lax")
	viper.SetDefault("COOKIE_PATH", "/")
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("LOGIN_IDENTIFIER_POLICY", string(domain.LoginPolicyRequireEither))
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("UPLOAD_TEMP_DIR", "./public/temp")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BASE_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("S3_BUCKET", "avatars")
	viper.SetDefault("S3_PUBLIC_BASE_URL", "")
	viper.SetDefault("S3_KEY_PREFIX", "users")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.AccessTokenSecret = viper.GetString("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == defaultAccessTokenSecret {
		log.Println("Warning: ACCESS_TOKEN_SECRET not set. Using default insecure key.")
	}
	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == defaultRefreshTokenSecret {
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	cfg.AccessTokenExpiryDuration = parseDuration("ACCESS_TOKEN_EXPIRY_DURATION", 24*time.Hour)
	cfg.RefreshTokenExpiryDuration = parseDuration("REFRESH_TOKEN_EXPIRY_DURATION", 10*24*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	sameSite, err := ParseSameSite(viper.GetString("COOKIE_SAME_SITE"))
	if err != nil {
		return nil, err
	}
	cfg.Cookie = CookieOptions{
		HTTPOnly: viper.GetBool("COOKIE_HTTP_ONLY"),
		Secure:   viper.GetBool("COOKIE_SECURE"),
		SameSite: sameSite,
		Path:     viper.GetString("COOKIE_PATH"),
		Domain:   viper.GetString("COOKIE_DOMAIN"),
	}
	if cfg.Cookie.SameSite == http.SameSiteNoneMode && !cfg.Cookie.Secure {
		return nil, fmt.Errorf("COOKIE_SAME_SITE=none requires COOKIE_SECURE=true")
	}

	cfg.LoginIdentifierPolicy, err = domain.ParseLoginIdentifierPolicy(viper.GetString("LOGIN_IDENTIFIER_POLICY"))
	if err != nil {
		return nil, err
	}

	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.UploadTempDir = viper.GetString("UPLOAD_TEMP_DIR")

	cfg.S3 = S3Config{
		Region:        viper.GetString("S3_REGION"),
		BaseEndpoint:  viper.GetString("S3_BASE_ENDPOINT"),
		AccessKey:     viper.GetString("S3_ACCESS_KEY"),
		SecretKey:     viper.GetString("S3_SECRET_KEY"),
		Bucket:        viper.GetString("S3_BUCKET"),
		PublicBaseURL: viper.GetString("S3_PUBLIC_BASE_URL"),
		KeyPrefix:     viper.GetString("S3_KEY_PREFIX"),
	}
	if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
		log.Println("Warning: S3_ACCESS_KEY or S3_SECRET_KEY not set. Falling back to the default AWS credential chain.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

// ParseSameSite maps a configuration value to an http.SameSite mode.
func ParseSameSite(value string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default":
		return http.SameSiteDefaultMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return http.SameSiteDefaultMode, fmt.Errorf("invalid COOKIE_SAME_SITE value %q", value)
	}
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
