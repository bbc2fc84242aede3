package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

func newTestService(t *testing.T, accessTTL, refreshTTL time.Duration) *Service {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AccessTokenValidityDuration = accessTTL
	cfg.RefreshTokenValidityDuration = refreshTTL

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func TestCreateAndValidateAccessToken(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour, 2*time.Hour)

	tok, err := s.CreateAccessToken("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	claims, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Fatalf("UserID mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("Email mismatch: got %q want %q", claims.Email, "user@example.com")
	}
	if claims.Subject != "user-123" {
		t.Fatalf("Subject mismatch: got %q want %q", claims.Subject, "user-123")
	}
	if claims.Issuer != "authkeeper" {
		t.Fatalf("Issuer mismatch: got %q want %q", claims.Issuer, "authkeeper")
	}
	if claims.ID == "" {
		t.Fatalf("expected non-empty token ID")
	}
}

func TestCreateRefreshToken_NoEmailClaim(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour, 2*time.Hour)

	tok, err := s.CreateRefreshToken("user-456")
	if err != nil {
		t.Fatalf("CreateRefreshToken error: %v", err)
	}

	claims, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}

	if claims.UserID != "user-456" {
		t.Fatalf("UserID mismatch: got %q want %q", claims.UserID, "user-456")
	}
	if claims.Email != "" {
		t.Fatalf("expected empty email in refresh token, got %q", claims.Email)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	s := newTestService(t, -1*time.Second, time.Hour)

	tok, err := s.CreateAccessToken("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	_, err = s.ValidateToken(tok)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestValidateToken_WrongKey(t *testing.T) {
	t.Parallel()

	issuing := newTestService(t, time.Hour, 2*time.Hour)
	validating := newTestService(t, time.Hour, 2*time.Hour)

	tok, err := issuing.CreateAccessToken("u2", "u2@example.com")
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	_, err = validating.ValidateToken(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for foreign key, got %v", err)
	}
}

func TestValidateToken_RejectsNonRSAMethod(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour, 2*time.Hour)

	hsToken := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		UserID: "u3",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := hsToken.SignedString([]byte("hmac-secret"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = s.ValidateToken(signed)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for HS256 token, got %v", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour, 2*time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := s.ValidateToken(tok); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("token %q: expected common.ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestTokenID(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour, 2*time.Hour)

	tok1, err := s.CreateAccessToken("u4", "u4@example.com")
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}
	tok2, err := s.CreateAccessToken("u4", "u4@example.com")
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	id1, err := s.TokenID(tok1)
	if err != nil {
		t.Fatalf("TokenID error: %v", err)
	}
	id2, err := s.TokenID(tok2)
	if err != nil {
		t.Fatalf("TokenID error: %v", err)
	}

	if id1 == "" || id2 == "" {
		t.Fatalf("expected non-empty token IDs")
	}
	if id1 == id2 {
		t.Fatalf("expected distinct token IDs, both %q", id1)
	}

	if _, err := s.TokenID("garbage"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for garbage token, got %v", err)
	}
}
