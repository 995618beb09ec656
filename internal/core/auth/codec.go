package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway tolerates clock skew between the issuing and verifying
// process when checking the expiry claim.
const expiryLeeway = 60 * time.Second

var (
	ErrTokenInvalid = errors.New("invalid credential")
	ErrTokenExpired = errors.New("expired credential")
)

// Principal is the authenticated identity carried inside a valid
// credential. It lives for the duration of one request.
type Principal struct {
	ID    string
	Email string
	Role  string
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and decodes signed, time-bounded identity tokens.
// The signing secret is injected once at construction; rotating it
// invalidates every previously issued credential.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec signing with secret. Tokens are valid for ttl
// from issuance; a non-positive ttl falls back to 7 days.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a credential for the given account.
func (c *Codec) Issue(accountID, email, role string) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return t.SignedString(c.secret)
}

// Decode verifies a credential and returns the principal it carries.
// Returns ErrTokenExpired when the expiry claim has passed (beyond the
// leeway) and ErrTokenInvalid for any other verification failure.
func (c *Codec) Decode(token string) (*Principal, error) {
	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithLeeway(expiryLeeway), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid || cl.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return &Principal{
		ID:    cl.Subject,
		Email: cl.Email,
		Role:  cl.Role,
	}, nil
}
