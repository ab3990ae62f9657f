package service

import (
	"errors"
	"testing"

	"playtube/internal/api/dto"
	"playtube/internal/config"
	"playtube/pkg/utils"
)

func newAuthEnv(t *testing.T) (*testEnv, *AuthService) {
	t.Helper()
	config.Set(&config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-access-secret",
			ExpireHours:        1,
			RefreshSecret:      "test-refresh-secret",
			RefreshExpireHours: 24,
		},
	})
	env := newTestEnv(t)
	return env, NewAuthService(env.userRepo)
}

func registerRequest(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: "secret123",
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	_, authSvc := newAuthEnv(t)

	info, err := authSvc.Register(registerRequest("alice"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if info.Username != "alice" || info.Email != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", info)
	}

	if _, err := authSvc.Register(registerRequest("alice")); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("duplicate username should fail with ErrUsernameExists, got %v", err)
	}

	req := registerRequest("alice2")
	req.Email = "alice@example.com"
	if _, err := authSvc.Register(req); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email should fail with ErrEmailExists, got %v", err)
	}
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	_, authSvc := newAuthEnv(t)

	if _, err := authSvc.Register(registerRequest("alice")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, identifier := range []string{"alice", "alice@example.com"} {
		tokens, err := authSvc.Login(&dto.LoginRequest{Identifier: identifier, Password: "secret123"})
		if err != nil {
			t.Fatalf("login with %q failed: %v", identifier, err)
		}
		if tokens.AccessToken == "" || tokens.RefreshToken == "" {
			t.Fatalf("login should issue both tokens")
		}
		claims, err := utils.ParseToken(tokens.AccessToken)
		if err != nil {
			t.Fatalf("access token should parse: %v", err)
		}
		if claims.UserID != tokens.User.ID {
			t.Fatalf("access token carries wrong user: %d != %d", claims.UserID, tokens.User.ID)
		}
	}

	if _, err := authSvc.Login(&dto.LoginRequest{Identifier: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("wrong password should fail with ErrInvalidCredential, got %v", err)
	}
	if _, err := authSvc.Login(&dto.LoginRequest{Identifier: "nobody", Password: "secret123"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("unknown user should fail with ErrInvalidCredential, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	_, authSvc := newAuthEnv(t)

	if _, err := authSvc.Register(registerRequest("alice")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tokens, err := authSvc.Login(&dto.LoginRequest{Identifier: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	rotated, err := authSvc.Refresh(&dto.RefreshRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Fatalf("refresh should rotate the refresh token")
	}

	// 旧刷新令牌轮换后立即失效
	if _, err := authSvc.Refresh(&dto.RefreshRequest{RefreshToken: tokens.RefreshToken}); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("old refresh token should be rejected, got %v", err)
	}

	// 新令牌仍然可用
	if _, err := authSvc.Refresh(&dto.RefreshRequest{RefreshToken: rotated.RefreshToken}); err != nil {
		t.Fatalf("rotated refresh token should work: %v", err)
	}

	if _, err := authSvc.Refresh(&dto.RefreshRequest{RefreshToken: "not-a-token"}); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("garbage token should fail with ErrInvalidRefreshToken, got %v", err)
	}
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	_, authSvc := newAuthEnv(t)

	if _, err := authSvc.Register(registerRequest("alice")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tokens, err := authSvc.Login(&dto.LoginRequest{Identifier: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := authSvc.Logout(tokens.User.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := authSvc.Refresh(&dto.RefreshRequest{RefreshToken: tokens.RefreshToken}); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("refresh after logout should fail with ErrInvalidRefreshToken, got %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	_, authSvc := newAuthEnv(t)

	info, err := authSvc.Register(registerRequest("alice"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := authSvc.GetCurrentUser(info.ID)
	if err != nil {
		t.Fatalf("get current user failed: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected username %q", got.Username)
	}

	if _, err := authSvc.GetCurrentUser(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user should fail with ErrUserNotFound, got %v", err)
	}
}
