package rest

import (
	"testing"

	"github.com/tgarmenliev/sofaccess-api/config"
)

func testAPI() *API {
	return &API{
		Config: &config.Config{
			JwtSecret:  "test-secret",
			JwtExpires: "1h",
			AdminEmail: "admin@sofaccess.bg",
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	api := testAPI()

	tokenString, expiresAt, err := api.createToken("admin@sofaccess.bg")
	if err != nil {
		t.Fatalf("createToken returned error: %v", err)
	}
	if tokenString == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := api.verifyToken(tokenString)
	if err != nil {
		t.Fatalf("verifyToken returned error: %v", err)
	}
	if claims.Email != "admin@sofaccess.bg" {
		t.Errorf("claims.Email = %q; want admin@sofaccess.bg", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("claims.Role = %q; want admin", claims.Role)
	}
	if claims.Exp != expiresAt.Unix() {
		t.Errorf("claims.Exp = %d; want %d", claims.Exp, expiresAt.Unix())
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	api := testAPI()

	for _, token := range []string{"", "not-a-token", "aa.bb.cc"} {
		if _, err := api.verifyToken(token); err == nil {
			t.Errorf("verifyToken(%q) should fail", token)
		}
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	api := testAPI()
	tokenString, _, err := api.createToken("admin@sofaccess.bg")
	if err != nil {
		t.Fatalf("createToken returned error: %v", err)
	}

	other := testAPI()
	other.Config.JwtSecret = "different-secret"
	if _, err := other.verifyToken(tokenString); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestCreateTokenBadExpiry(t *testing.T) {
	api := testAPI()
	api.Config.JwtExpires = "not-a-duration"

	if _, _, err := api.createToken("admin@sofaccess.bg"); err == nil {
		t.Error("expected an error for an unparseable expiry")
	}
}
