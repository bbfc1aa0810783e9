package pkg

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.ExpiresAt == nil {
		t.Error("expiry claim missing with a positive ttl")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)

	token, err := issuer.Generate(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Error("zero ttl should issue tokens without an expiry claim")
	}
}

func TestParseWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Generate(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	_, err = NewTokenIssuer("secret-b", time.Hour).Parse(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestParseExpired(t *testing.T) {
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = NewTokenIssuer("secret", time.Hour).Parse(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestParseGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour).Parse("not.a.token")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestRandHexToken(t *testing.T) {
	a, err := RandHexToken(20)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if len(a) != 40 {
		t.Errorf("len = %d, want 40 hex chars for 20 bytes", len(a))
	}
	b, _ := RandHexToken(20)
	if a == b {
		t.Error("two tokens came out identical")
	}
}
