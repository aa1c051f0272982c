package sessiontoken

import (
	"testing"
	"time"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secret", time.Minute, 42, "patient")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := Parse("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.UserType != "patient" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Generate("secret", time.Minute, 1, "doctor")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Parse("other-secret", token); err == nil {
		t.Fatalf("expected signature verification failure")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := Generate("secret", -time.Minute, 1, "patient")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Parse("secret", token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("secret", "not-a-token"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
