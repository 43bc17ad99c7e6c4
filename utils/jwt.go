package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

// RoomClaims binds a token to one chat room.
type RoomClaims struct {
	RoomID string `json:"room_id"`
	jwt.StandardClaims
}

// TokenIssuer signs and verifies HS256 chat room tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a token for roomID that expires after the issuer's TTL.
func (t *TokenIssuer) Issue(roomID string) (string, error) {
	now := t.now()
	claims := RoomClaims{
		RoomID: roomID,
		StandardClaims: jwt.StandardClaims{
			Subject:   roomID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// RoomID validates the token and returns the room it grants access to.
func (t *TokenIssuer) RoomID(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RoomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*RoomClaims)
	if !ok || !token.Valid || claims.RoomID == "" {
		return "", ErrInvalidToken
	}
	return claims.RoomID, nil
}
