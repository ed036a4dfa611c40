package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestSignAndVerify(t *testing.T) {
	a := NewAuthenticator("secret", "quiz")
	token, err := a.Sign("u1", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	userID, err := a.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected u1, got %s", userID)
	}
}

func TestVerifyRejects(t *testing.T) {
	a := NewAuthenticator("secret", "quiz")

	if _, err := a.Verify(""); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected no token, got %v", err)
	}

	other, _ := NewAuthenticator("other-secret", "quiz").Sign("u1", time.Hour)
	if _, err := a.Verify(other); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid signature, got %v", err)
	}

	wrongIssuer, _ := NewAuthenticator("secret", "someone-else").Sign("u1", time.Hour)
	if _, err := a.Verify(wrongIssuer); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid issuer, got %v", err)
	}

	past := NewAuthenticator("secret", "quiz")
	past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := past.Sign("u1", time.Hour)
	if _, err := a.Verify(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token rejected, got %v", err)
	}

	if _, err := a.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected malformed token rejected, got %v", err)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	a := NewAuthenticator("secret", "")
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := a.Verify(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected none algorithm rejected, got %v", err)
	}
}

func TestVerifyFallsBackToSubject(t *testing.T) {
	a := NewAuthenticator("secret", "")
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u9"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	userID, err := a.Verify(raw)
	if err != nil || userID != "u9" {
		t.Fatalf("expected u9, got %q %v", userID, err)
	}
}

func TestUserIDContext(t *testing.T) {
	if _, ok := UserID(context.Background()); ok {
		t.Fatalf("expected no user on empty context")
	}
	ctx := WithUserID(context.Background(), "u1")
	if userID, ok := UserID(ctx); !ok || userID != "u1" {
		t.Fatalf("expected u1, got %q", userID)
	}
}
