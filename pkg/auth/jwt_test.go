package auth

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("farm-1", "operator")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validating token: %v", err)
	}
	if claims.ActorID != "farm-1" {
		t.Fatalf("expected actor farm-1, got %q", claims.ActorID)
	}
	if claims.Role != "operator" {
		t.Fatalf("expected role operator, got %q", claims.Role)
	}
	if claims.Issuer != "traceability-service" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if claims.Subject != "farm-1" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
	if _, err := ValidateToken(""); err == nil {
		t.Fatal("expected an error for an empty token")
	}
}
