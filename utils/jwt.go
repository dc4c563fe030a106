package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"drivewell/config"

	"github.com/golang-jwt/jwt"
)

// TokenPayload is the identity carried by access tokens. Role is one of
// Customer, Staff or Manager; Branch is set for staff accounts only.
type TokenPayload struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Branch   string `json:"branch,omitempty"`
}

// AccessTokenTTL is the lifetime of an access token; refresh tokens last a day.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 24 * time.Hour
)

// GenerateAccessToken creates a signed short-lived token carrying the full
// identity payload.
func GenerateAccessToken(p TokenPayload) (string, error) {
	claims := jwt.MapClaims{
		"userInfo": map[string]string{
			"userId":   p.UserID,
			"userName": p.UserName,
			"email":    p.Email,
			"role":     p.Role,
			"branch":   p.Branch,
		},
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.AccessTokenSecret))
}

// GenerateRefreshToken creates a signed long-lived token keyed by email only.
func GenerateRefreshToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(RefreshTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.RefreshTokenSecret))
}

// HashToken computes a SHA-256 hash of the token string. Only the hash is
// persisted on the user record.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func parseWithSecret(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateAccessToken parses an access token and returns its identity payload.
func ValidateAccessToken(tokenString string) (*TokenPayload, error) {
	claims, err := parseWithSecret(tokenString, config.AppConfig.AccessTokenSecret)
	if err != nil {
		return nil, err
	}
	info, ok := claims["userInfo"].(map[string]interface{})
	if !ok {
		return nil, errors.New("token does not contain an identity payload")
	}
	str := func(key string) string {
		v, _ := info[key].(string)
		return v
	}
	payload := &TokenPayload{
		UserID:   str("userId"),
		UserName: str("userName"),
		Email:    str("email"),
		Role:     str("role"),
		Branch:   str("branch"),
	}
	if payload.UserID == "" || payload.Role == "" {
		return nil, errors.New("token identity payload is incomplete")
	}
	return payload, nil
}

// ValidateRefreshToken parses a refresh token and returns the email claim.
func ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := parseWithSecret(tokenString, config.AppConfig.RefreshTokenSecret)
	if err != nil {
		return "", err
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("token does not contain a valid 'email' claim")
	}
	return email, nil
}
