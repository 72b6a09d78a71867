package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret     []byte
	jwtAccessTTL  time.Duration
	jwtRefreshTTL time.Duration
)

// InitJWT configures the signing secret and token lifetimes.
// Must be called once at startup before any token is issued or validated.
func InitJWT(secret string, accessTTL, refreshTTL time.Duration) {
	jwtSecret = []byte(secret)
	jwtAccessTTL = accessTTL
	jwtRefreshTTL = refreshTTL
}

// Claims carries the authenticated identity inside a JWT.
type Claims struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// TokenPair bundles the access and refresh tokens returned on login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// GenerateTokenPair issues a signed access/refresh token pair for a user.
func GenerateTokenPair(userID int64, username, role string) (*TokenPair, error) {
	access, err := generateToken(userID, username, role, "access", jwtAccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := generateToken(userID, username, role, "refresh", jwtRefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(jwtAccessTTL.Seconds()),
	}, nil
}

func generateToken(userID int64, username, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJWT parses and verifies an access token, returning its claims.
func ValidateJWT(tokenString string) (*Claims, error) {
	return validateToken(tokenString, "access")
}

// ValidateRefreshJWT parses and verifies a refresh token, returning its claims.
func ValidateRefreshJWT(tokenString string) (*Claims, error) {
	return validateToken(tokenString, "refresh")
}

func validateToken(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
