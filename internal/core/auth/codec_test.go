package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCodec_IssueDecode_Roundtrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	token, err := codec.Issue("acc_1", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	principal, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if principal.ID != "acc_1" {
		t.Fatalf("unexpected subject: %s", principal.ID)
	}
	if principal.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", principal.Email)
	}
	if principal.Role != "user" {
		t.Fatalf("unexpected role: %s", principal.Role)
	}
}

// signToken builds a token outside the codec so expiry and signature
// failures can be staged precisely.
func signToken(t *testing.T, secret string, method jwt.SigningMethod, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims{
		Email: "bob@example.com",
		Role:  "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc_2",
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestCodec_Decode_Expired(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	token := signToken(t, "secret", jwt.SigningMethodHS256, time.Now().Add(-2*time.Minute))

	if _, err := codec.Decode(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_Decode_ExpiredWithinLeeway(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	// 30s past expiry is inside the 60s clock-skew leeway.
	token := signToken(t, "secret", jwt.SigningMethodHS256, time.Now().Add(-30*time.Second))

	if _, err := codec.Decode(token); err != nil {
		t.Fatalf("expected token inside leeway to decode, got %v", err)
	}
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	token := signToken(t, "other-secret", jwt.SigningMethodHS256, time.Now().Add(time.Hour))

	if _, err := codec.Decode(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_Decode_WrongAlgorithm(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	token := signToken(t, "secret", jwt.SigningMethodHS384, time.Now().Add(time.Hour))

	if _, err := codec.Decode(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	if _, err := codec.Decode("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_Decode_MissingSubject(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := codec.Decode(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
