package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/user_account_service/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims are the claims carried by an access token.
type AccessClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// registeredClaims builds the standard claims. The random ID keeps two tokens
// issued within the same second from being identical.
func registeredClaims(userID string, expiryDuration time.Duration, issuer string) (jwt.RegisteredClaims, time.Time) {
	now := time.Now()
	expiresAt := now.Add(expiryDuration)
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}, expiresAt
}

// GenerateAccessToken signs a short-lived token identifying the user.
func GenerateAccessToken(user *domain.User, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	if user == nil || user.UserID == "" {
		return "", time.Time{}, errors.New("cannot sign access token without a user id")
	}
	rc, expiresAt := registeredClaims(user.UserID, expiryDuration, issuer)
	claims := AccessClaims{
		Username:         user.Username,
		Email:            user.Email,
		FullName:         user.FullName,
		RegisteredClaims: rc,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GenerateRefreshToken signs a long-lived token carrying only the user id.
func GenerateRefreshToken(userID string, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("cannot sign refresh token without a user id")
	}
	claims, expiresAt := registeredClaims(userID, expiryDuration, issuer)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the RegisteredClaims if the token is valid, or an error otherwise.
// When issuer is non-empty the token's iss claim must match it.
func ParseAndValidateJWT(tokenString string, secretKey string, issuer string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}
