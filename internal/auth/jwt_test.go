package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	token, exp, err := Issue("4", "admin", "gradportal-test", "secret", time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if time.Until(exp) > time.Minute || time.Until(exp) <= 0 {
		t.Fatalf("unexpected expiry %s", exp)
	}

	claims, err := Parse(token, "secret", "gradportal-test")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "4" {
		t.Fatalf("expected subject 4, got %s", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, _, err := Issue("1", "student", "gradportal-test", "secret", time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := Parse(token, "other-secret", "gradportal-test"); err == nil {
		t.Fatal("expected wrong key to fail")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, _, err := Issue("1", "student", "someone-else", "secret", time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := Parse(token, "secret", "gradportal-test"); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, _, err := Issue("1", "student", "gradportal-test", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := Parse(token, "secret", "gradportal-test"); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
