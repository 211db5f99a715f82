package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secret = "0123456789abcdef"

func TestIssueAndParse(t *testing.T) {
	tok, err := IssueToken(secret, time.Hour, 7, "admin@example.com", time.Now())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	claims, err := ParseToken(secret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != 7 {
		t.Errorf("UserID = %d, %v; want 7", id, err)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}

	ctx := WithClaims(context.Background(), claims)
	if got, ok := FromContext(ctx); !ok || got != claims {
		t.Error("FromContext did not return stored claims")
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext on empty context should be false")
	}
}

func TestParseTokenRejects(t *testing.T) {
	expired, _ := IssueToken(secret, time.Hour, 1, "a@b.c", time.Now().Add(-2*time.Hour))
	otherKey, _ := IssueToken("ffffffffffffffffffff", time.Hour, 1, "a@b.c", time.Now())
	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer: Issuer, Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": otherKey,
		"alg none":     unsigned,
		"garbage":      "not.a.token",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseToken(secret, tok); err == nil {
				t.Error("expected error")
			}
		})
	}
}
