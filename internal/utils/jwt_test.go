package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	signed, tokenID, err := GenerateAccessToken("user-1", "reader@example.com", "user")
	if err != nil {
		t.Fatal(err)
	}
	if tokenID == "" {
		t.Fatal("expected a token id")
	}

	claims, err := ParseAccessToken(signed)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user-1" || claims.Email != "reader@example.com" || claims.Role != "user" {
		t.Errorf("claims did not round trip: %+v", claims)
	}
	if claims.TokenID != tokenID {
		t.Errorf("token id mismatch: %s vs %s", claims.TokenID, tokenID)
	}

	ttl := GetTokenExpirationDuration(claims)
	if ttl <= 0 || ttl > AccessTokenTTL {
		t.Errorf("unexpected remaining lifetime %v", ttl)
	}
}

func TestGuestTokenCarriesGuestRole(t *testing.T) {
	signed, err := GenerateGuestToken("guest_abc")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseAccessToken(signed)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Role != "guest" || claims.UserID != "guest_abc" {
		t.Errorf("unexpected guest claims: %+v", claims)
	}
}

func TestParseAccessTokenRejectsTampering(t *testing.T) {
	signed, _, err := GenerateAccessToken("user-1", "reader@example.com", "user")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseAccessToken(signed + "x"); err == nil {
		t.Error("tampered token accepted")
	}
	if _, err := ParseAccessToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestRefreshTokensAreOpaqueAndUnique(t *testing.T) {
	t1, err := GenerateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	t2, err := GenerateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if t1 == t2 {
		t.Error("refresh tokens must not repeat")
	}
	if _, err := ParseAccessToken(t1); err == nil {
		t.Error("refresh token should not parse as a JWT")
	}
}

func TestExpiredTokenHasNoRemainingLifetime(t *testing.T) {
	claims := &AccessClaims{}
	if GetTokenExpirationDuration(claims) != 0 {
		t.Error("missing expiry should mean zero lifetime")
	}

	signed, _, err := GenerateAccessToken("user-1", "a@b.c", "user")
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseAccessToken(signed)
	if err != nil {
		t.Fatal(err)
	}
	parsed.ExpiresAt.Time = time.Now().Add(-time.Minute)
	if GetTokenExpirationDuration(parsed) != 0 {
		t.Error("past expiry should mean zero lifetime")
	}
}
