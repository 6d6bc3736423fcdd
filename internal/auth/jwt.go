package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	headerType      = "JWT"
	headerAlgorithm = "HS256"
)

var (
	ErrMissingSigningSecret = errors.New("auth: missing signing secret")
	ErrInvalidToken         = errors.New("auth: invalid token")
	ErrExpiredToken         = errors.New("auth: token is expired")
	ErrInvalidSignature     = errors.New("auth: invalid signature")
)

type tokenHeader struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims is the token payload issued by the identity service. Roles gate the
// notification endpoints.
type Claims struct {
	Subject   string   `json:"sub,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	ExpiresAt int64    `json:"exp,omitempty"`
	IssuedAt  int64    `json:"iat,omitempty"`
}

// Valid checks temporal claims. A zero exp is treated as unset.
func (c Claims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return ErrExpiredToken
	}
	return nil
}

func (c Claims) HasAnyRole(roles ...string) bool {
	for _, required := range roles {
		for _, held := range c.Roles {
			if strings.EqualFold(held, required) {
				return true
			}
		}
	}
	return false
}

// TokenService validates and issues HMAC-SHA256 bearer tokens.
type TokenService struct {
	signingSecret []byte
}

func NewTokenService(signingSecret string) (*TokenService, error) {
	if signingSecret == "" {
		return nil, ErrMissingSigningSecret
	}
	return &TokenService{signingSecret: []byte(signingSecret)}, nil
}

func (s *TokenService) Generate(claims Claims) (string, error) {
	headerJSON, err := json.Marshal(tokenHeader{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + s.sign(payload), nil
}

func (s *TokenService) Parse(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	// Constant-time comparison prevents signature timing probes.
	payload := parts[0] + "." + parts[1]
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(s.sign(payload))) != 1 {
		return Claims{}, ErrInvalidSignature
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var header tokenHeader
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if header.Algorithm != headerAlgorithm {
		return Claims{}, ErrInvalidToken
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}

	if err := claims.Valid(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

func (s *TokenService) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingSecret)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
