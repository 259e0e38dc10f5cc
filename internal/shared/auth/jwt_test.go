package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignAndVerifyRoundtrip(t *testing.T) {
	token, err := SignJWT(Claims{Sub: "user-1", Email: "a@b.com", Name: "Ann"})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "a@b.com" || claims.Name != "Ann" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Exp-claims.Iat != int64(tokenLifetime/time.Second) {
		t.Fatalf("expected %v lifetime, got %d seconds", tokenLifetime, claims.Exp-claims.Iat)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	token, err := SignJWT(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := VerifyJWT(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour).Unix()
	token, err := SignJWT(Claims{Sub: "user-1", Iat: past - 3600, Exp: past})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := VerifyJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSignRequiresSubject(t *testing.T) {
	if _, err := SignJWT(Claims{}); err == nil {
		t.Fatalf("expected error for missing sub")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := VerifyJWT("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
