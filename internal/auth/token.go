package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/micromarket/backend/internal/domain"
)

// Signing key and expiry window are fixed constants, matching the deployed
// service. They are deliberately not configurable.
const (
	jwtSecret   = "micromarket_secret_key_2025"
	TokenExpiry = 24 * time.Hour
)

// Claims is the bearer token payload: the subject user plus the standard
// expiry field.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SigningKey returns the HS256 key used for both issuing and verifying.
func SigningKey() []byte {
	return []byte(jwtSecret)
}

// CreateToken issues a signed bearer token for the user, expiring
// TokenExpiry from now.
func CreateToken(user *domain.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(SigningKey())
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken verifies a bearer token and returns its claims. Expired,
// malformed, or badly signed tokens yield an error.
func ParseToken(tokenString string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return SigningKey(), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
