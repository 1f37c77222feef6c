package jwt

import (
	"errors"
	"time"

	"messages/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims mirrors the access tokens issued by the auth service.
type Claims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

// Validator checks HS256 access tokens and resolves the caller they identify.
type Validator struct {
	secretKey []byte
}

func NewValidator(secretKey string) *Validator {
	return &Validator{
		secretKey: []byte(secretKey),
	}
}

// Issue signs an access token for userId. The listing service never issues
// tokens to clients; this exists for local tooling and tests.
func (v *Validator) Issue(userId string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secretKey)
}

// ValidateAccessToken validates and parses an access token
func (v *Validator) ValidateAccessToken(tokenString string) (entity.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entity.Caller{}, ErrExpiredToken
		}
		return entity.Caller{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserId == "" {
		return entity.Caller{}, ErrInvalidToken
	}

	return entity.Caller{Id: claims.UserId}, nil
}
