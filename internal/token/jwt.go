// Package token implements stateless session tokens as HS256-signed
// JWTs. Tokens carry the standard issuer/subject/expiry claims plus
// user_id and username custom claims; they are never persisted and
// never revoked, expiry is the only invalidation mechanism.
package token

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comfyui-plus/backend/internal/model"
)

// Claims represents the payload of an issued session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	issuer    string
	audience  string
	ttl       time.Duration
}

// NewJWT creates a JWT token manager. Secret, issuer and TTL come from
// trusted configuration; an empty secret or issuer or a non-positive
// TTL is a fatal configuration error surfaced at startup.
func NewJWT(secretKey, issuer, audience string, ttl time.Duration) (*JWT, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	if issuer == "" {
		return nil, errors.New("jwt issuer is not configured")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}

	return &JWT{secretKey: secretKey, issuer: issuer, audience: audience, ttl: ttl}, nil
}

// Issue creates a signed token for the given user valid for the
// configured TTL.
func (j *JWT) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID:   userID,
		Username: username,
	}
	if j.audience != "" {
		claims.Audience = jwt.ClaimStrings{j.audience}
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify parses and validates a token string: signature, issuer,
// audience when configured, and expiry. Every failure mode yields an
// error without distinguishing the reason to the caller.
func (j *JWT) Verify(tokenString string) (*model.DecodedToken, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}

	opts := []jwt.ParserOption{
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
	}
	if j.audience != "" {
		opts = append(opts, jwt.WithAudience(j.audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	return &model.DecodedToken{Claims: claims}, nil
}

// ExtractUserID reads the user identity from a decoded token. The
// user_id claim is accepted as a number or a numeric string to
// tolerate tokens minted by other systems; the standard subject claim
// is the fallback when user_id is absent.
func ExtractUserID(decoded *model.DecodedToken) (int64, bool) {
	if decoded == nil {
		return 0, false
	}

	if v, ok := decoded.Claims["user_id"]; ok {
		switch id := v.(type) {
		case float64:
			// JSON numbers decode as float64; a fractional value is
			// not a user id.
			if id != math.Trunc(id) {
				return 0, false
			}
			return int64(id), true
		case int64:
			return id, true
		case string:
			if parsed, err := strconv.ParseInt(id, 10, 64); err == nil {
				return parsed, true
			}
		}
		return 0, false
	}

	if sub, ok := decoded.Claims["sub"].(string); ok {
		if parsed, err := strconv.ParseInt(sub, 10, 64); err == nil {
			return parsed, true
		}
	}

	return 0, false
}

// ExtractUsername reads the username claim if present.
func ExtractUsername(decoded *model.DecodedToken) (string, bool) {
	if decoded == nil {
		return "", false
	}
	username, ok := decoded.Claims["username"].(string)
	return username, ok && username != ""
}
