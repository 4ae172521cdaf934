package service

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/lequiz/lequiz-backend/internal/config"
)

func newAuthFixture(t *testing.T) (*AuthService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	return NewAuthService(cfg, client), mr
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)

	hash, err := svc.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := svc.CheckPassword(hash, "secret123"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestTokenIssueAndValidate(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.GenerateAdminToken(ctx, 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != 42 {
		t.Fatalf("expected admin 42, got %d", claims.AdminID)
	}
	if claims.ID == "" {
		t.Fatal("token has no jti")
	}
}

func TestRevokedTokenFailsValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.GenerateAdminToken(ctx, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := svc.RevokeToken(ctx, claims.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	// The signature is still valid, but the registry entry is gone.
	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestRegistryEntryExpiresWithToken(t *testing.T) {
	svc, mr := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.GenerateAdminToken(ctx, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := svc.ValidateToken(ctx, token); err == nil {
		t.Fatal("token accepted after the registry entry expired")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.ValidateToken(context.Background(), "not-a-jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
