package service

import (
	"context"
	"testing"

	"github.com/lumis/servicedesk/internal/config"
	"github.com/lumis/servicedesk/internal/domain"
)

func newAuthFixture() (*AuthService, *memStore) {
	store := newMemStore()
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4
	return NewAuthService(cfg, store.Users()), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "Mira", "mira@example.com", "hunter2", domain.DepartmentMarketing, nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("no token issued on register")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Department != domain.DepartmentMarketing {
		t.Errorf("claims = %+v", claims)
	}

	if _, _, _, err := svc.Login(ctx, "mira@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	_, _, _, err = svc.Login(ctx, "mira@example.com", "wrong")
	if code := domainCode(t, err); code != "UNAUTHORIZED" {
		t.Errorf("bad password code = %s", code)
	}
	_, _, _, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	if code := domainCode(t, err); code != "UNAUTHORIZED" {
		t.Errorf("unknown email code = %s", code)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "Mira", "mira@example.com", "hunter2", domain.DepartmentMarketing, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, _, err := svc.Register(ctx, "Other", "mira@example.com", "hunter2", domain.DepartmentMarketing, nil)
	if code := domainCode(t, err); code != "CONFLICT" {
		t.Errorf("duplicate email code = %s", code)
	}

	_, _, _, err = svc.Register(ctx, "Dana", "dana@example.com", "hunter2", domain.DepartmentDealer, nil)
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("dealer without id code = %s", code)
	}

	_, _, _, err = svc.Register(ctx, "", "x@example.com", "hunter2", domain.DepartmentRD, nil)
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("empty name code = %s", code)
	}
}
