package service

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"miniblog/internal/dto"
	"miniblog/internal/repository"
	"miniblog/internal/token"
	"miniblog/pkg/apperror"
)

func newAuthService(t *testing.T) (AuthService, repository.UserRepository, *token.Manager) {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	tokens := token.NewManager("test-secret", time.Hour)
	return NewAuthService(userRepo, tokens, "reader"), userRepo, tokens
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	svc, _, tokens := newAuthService(t)

	resp, err := svc.Register(testCtx, dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.User.Role != "reader" {
		t.Fatalf("new user role = %q, want reader", resp.User.Role)
	}
	if !resp.User.Active {
		t.Fatalf("new user should be active")
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("token type = %q, want Bearer", resp.TokenType)
	}

	userID, claims, err := tokens.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != resp.User.ID {
		t.Fatalf("token subject = %d, want %d", userID, resp.User.ID)
	}
	if claims.Role != "reader" {
		t.Fatalf("token role claim = %q, want reader", claims.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	first := dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "s3cretpass"}
	if _, err := svc.Register(testCtx, first); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(testCtx, dto.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	wantStatus(t, err, http.StatusConflict)

	_, err = svc.Register(testCtx, dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cretpass",
	})
	wantStatus(t, err, http.StatusConflict)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if _, err := svc.Register(testCtx, dto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "s3cretpass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, identifier := range []string{"bob", "bob@example.com"} {
		resp, err := svc.Login(testCtx, dto.LoginRequest{Identifier: identifier, Password: "s3cretpass"})
		if err != nil {
			t.Fatalf("login with %q failed: %v", identifier, err)
		}
		if resp.AccessToken == "" {
			t.Fatalf("login with %q returned no token", identifier)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)

	if _, err := svc.Register(testCtx, dto.RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "s3cretpass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(testCtx, dto.LoginRequest{Identifier: "carol", Password: "wrongpass"})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want invalid credentials", err)
	}

	_, err = svc.Login(testCtx, dto.LoginRequest{Identifier: "nobody", Password: "s3cretpass"})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("unknown identifier: got %v, want invalid credentials", err)
	}

	// A deactivated account is indistinguishable from bad credentials.
	user, err := userRepo.FindByUsername(testCtx, "carol")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	user.Active = false
	if err := userRepo.Update(testCtx, user); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, err = svc.Login(testCtx, dto.LoginRequest{Identifier: "carol", Password: "s3cretpass"})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("inactive user: got %v, want invalid credentials", err)
	}
}
