package middleware

import (
	"testing"
	"time"

	"wayfare/globals"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	claims := Claims{
		Username: "tester",
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return s
}

func TestValidateJWTAcceptsBareAndBearerTokens(t *testing.T) {
	token := signedToken(t, "u1")

	for _, in := range []string{token, "Bearer " + token} {
		claims, err := ValidateJWT(in)
		if err != nil {
			t.Fatalf("token %q rejected: %v", in[:10], err)
		}
		if claims.UserID != "u1" {
			t.Fatalf("expected u1, got %q", claims.UserID)
		}
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "Bearer ", "not.a.token", "Bearer not.a.token"} {
		if _, err := ValidateJWT(in); err == nil {
			t.Fatalf("token %q accepted", in)
		}
	}
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	claims := Claims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	if _, err := ValidateJWT(s); err == nil {
		t.Fatal("token signed with a different key accepted")
	}
}
