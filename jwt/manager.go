package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects which token class a claim is signed or verified under.
//
// Kind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Kind string

const (
	// KindAccess is an exported constant or variable used by the token manager.
	KindAccess Kind = "access"
	// KindRefresh is an exported constant or variable used by the token manager.
	KindRefresh Kind = "refresh"
)

// ErrInvalidToken is the single failure surface of Verify. Signature
// mismatch, malformed structure, expiry, and kind mismatch all collapse
// into it so callers cannot distinguish which check rejected the token.
var ErrInvalidToken = errors.New("invalid token")

// Config defines a public type used by authkit APIs.
//
// Each kind signs with its own HS256 secret and its own expiry window, so an
// access-signed token can never verify under refresh rules and vice versa.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
}

// Manager defines a public type used by authkit APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config Config
}

// Claim is the identity payload embedded in every issued token.
type Claim struct {
	UserID string
	Email  string
	Role   string
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Kind  string `json:"tkn"`
	jwt.RegisteredClaims
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
// NewManager does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("both kind secrets are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	return &Manager{config: cfg}, nil
}

func (m *Manager) kindParams(kind Kind) ([]byte, time.Duration, bool) {
	switch kind {
	case KindAccess:
		return m.config.AccessSecret, m.config.AccessTTL, true
	case KindRefresh:
		return m.config.RefreshSecret, m.config.RefreshTTL, true
	default:
		return nil, 0, false
	}
}

// Issue describes the issue operation and its observable behavior.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue signs the claim under the kind's secret with the kind's expiry
// window, encoding subject id, email, role, issued-at, and expiry.
func (m *Manager) Issue(claim Claim, kind Kind) (string, error) {
	secret, ttl, ok := m.kindParams(kind)
	if !ok {
		return "", errors.New("unsupported token kind")
	}
	if claim.UserID == "" || claim.Email == "" {
		return "", errors.New("claim subject and email are required")
	}

	now := time.Now()
	claims := sessionClaims{
		Email: claim.Email,
		Role:  claim.Role,
		Kind:  string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.UserID,
			Issuer:    m.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify checks signature integrity, expiry, and that the embedded kind
// matches the expected kind. Every failure returns [ErrInvalidToken].
func (m *Manager) Verify(tokenStr string, kind Kind) (*Claim, error) {
	secret, _, ok := m.kindParams(kind)
	if !ok {
		return nil, ErrInvalidToken
	}
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.Kind != string(kind) {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Claim{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
