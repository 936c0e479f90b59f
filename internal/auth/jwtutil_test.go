package auth

import (
	"strings"
	"testing"
)

func TestSignAndVerifyRoundtrip(t *testing.T) {
	secret := []byte("test-secret")
	claims := map[string]any{"sub": "user-1", "ver": 3}

	token, err := SignHS256(claims, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parsed, err := ParseAndVerifyHS256(token, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if parsed["sub"] != "user-1" {
		t.Fatalf("expected sub user-1, got %v", parsed["sub"])
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := SignHS256(map[string]any{"sub": "user-1"}, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + b64.EncodeToString([]byte(`{"sub":"user-2"}`)) + "." + parts[2]

	if _, err := ParseAndVerifyHS256(tampered, secret); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := SignHS256(map[string]any{"sub": "user-1"}, []byte("secret-a"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, []byte("secret-b")); err == nil {
		t.Fatal("expected verification failure")
	}
}
