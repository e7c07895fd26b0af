package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/agencydesk/backoffice/internal/domain"
)

// TokenReason classifies why verification failed. The client only ever sees a
// generic message; the reason is for server-side diagnostics.
type TokenReason string

const (
	TokenReasonMissing          TokenReason = "missing"
	TokenReasonMalformed        TokenReason = "malformed"
	TokenReasonSignatureInvalid TokenReason = "signature_invalid"
	TokenReasonExpired          TokenReason = "expired"
)

// TokenError is a verification failure with a diagnostic reason.
type TokenError struct {
	Reason TokenReason
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Reason, e.Err)
	}
	return "token " + string(e.Reason)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// TokenManager handles issuing and verifying JWT tokens. The secret is
// process-wide and read-only after startup.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the default token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Claims describes the JWT payload.
type Claims struct {
	UserID   int64       `json:"userId"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a JWT for the identity. A non-positive ttl falls
// back to the manager default.
func (tm *TokenManager) Issue(identity Identity, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = tm.ttl
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID:   identity.UserID,
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the token and returns the encoded identity. Failures carry
// a TokenError with a distinguishable reason; any tampering surfaces as
// signature_invalid, expiry is checked against the verifier's clock with no
// grace period.
func (tm *TokenManager) Verify(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, &TokenError{Reason: TokenReasonMissing}
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return Identity{}, &TokenError{Reason: classifyJWTError(err), Err: err}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, &TokenError{Reason: TokenReasonMalformed}
	}
	if !claims.Role.Valid() {
		return Identity{}, &TokenError{Reason: TokenReasonMalformed, Err: fmt.Errorf("unknown role %q", claims.Role)}
	}

	return Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func classifyJWTError(err error) TokenReason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return TokenReasonSignatureInvalid
	default:
		return TokenReasonMalformed
	}
}
