package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenWrongType = errors.New("wrong token type")
)

// Claims is the decoded identity carried by a token.
type Claims struct {
	UserID   int
	Username string
	Type     string
}

func GenerateJWT(secret string, userID int, username, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":   userID,
		"uname": username,
		"typ":   tokenType,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
		"iss":   "campusgo-backend",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates signature and expiry and returns the claims.
// wantType guards against refresh tokens being used as access tokens.
func ParseJWT(secret, tokenStr, wantType string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrTokenEmpty
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	uidF, ok1 := claims["uid"].(float64)
	uname, ok2 := claims["uname"].(string)
	typ, ok3 := claims["typ"].(string)
	if !ok1 || !ok2 || !ok3 {
		return Claims{}, ErrTokenInvalid
	}
	if typ != wantType {
		return Claims{}, ErrTokenWrongType
	}

	return Claims{UserID: int(uidF), Username: uname, Type: typ}, nil
}
