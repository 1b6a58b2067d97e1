package network

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidToken is returned when a session token cannot yield a user id.
var ErrInvalidToken = errors.New("invalid session token")

type tokenClaims struct {
	ID string `json:"id"`
}

// UserIDFromToken extracts the user id from a session token's payload.
// The signature is not checked; the server does that on join.
func UserIDFromToken(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidToken, len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return "", fmt.Errorf("%w: payload: %v", ErrInvalidToken, err)
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("%w: claims: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}
	return claims.ID, nil
}

// DevToken builds an unsigned token carrying id, for local runs against the dev server.
func DevToken(id string) string {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims, _ := json.Marshal(tokenClaims{ID: id})
	return header + "." + enc.EncodeToString(claims) + "."
}
