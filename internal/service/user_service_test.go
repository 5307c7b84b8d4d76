package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nayelic98/backend-spring-01/internal/domain"
	"github.com/Nayelic98/backend-spring-01/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key"

func newUserService(userRepo *mockUserRepository, tokenRepo *mockRefreshTokenRepository) UserService {
	return NewUserService(userRepo, &mockRoleRepository{}, tokenRepo, testJWTSecret)
}

func TestRegister(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newUserService(userRepo, newMockRefreshTokenRepository())

	user, err := service.Register(context.Background(), "Jane Smith", "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if user.ID == 0 {
		t.Error("expected the store to assign an id")
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Errorf("expected the default USER role, got %v", user.Roles)
	}
	if user.PasswordHash == "password123" {
		t.Error("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newUserService(userRepo, newMockRefreshTokenRepository())
	ctx := context.Background()

	if _, err := service.Register(ctx, "Jane Smith", "jane@example.com", "password123"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := service.Register(ctx, "Other Jane", "jane@example.com", "different456")
	if !errors.Is(err, repository.ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestPasswordHashingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	service := &userService{}

	properties.Property("hash verifies against its own password", prop.ForAll(
		func(password string) bool {
			hash, err := service.hashPassword(password)
			if err != nil {
				return false
			}
			return service.verifyPassword(hash, password) == nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) >= 8 && len(s) <= 64 }),
	))

	properties.Property("hash rejects a different password", prop.ForAll(
		func(password, other string) bool {
			if password == other {
				return true
			}
			hash, err := service.hashPassword(password)
			if err != nil {
				return false
			}
			return service.verifyPassword(hash, other) != nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) >= 8 && len(s) <= 64 }),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) >= 8 && len(s) <= 64 }),
	))

	properties.TestingRun(t)
}

func TestLogin(t *testing.T) {
	userRepo := newMockUserRepository()
	tokenRepo := newMockRefreshTokenRepository()
	service := newUserService(userRepo, tokenRepo)
	ctx := context.Background()

	registered, err := service.Register(ctx, "Jane Smith", "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	accessToken, refreshToken, user, err := service.Login(ctx, "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, user.ID)
	}

	claims, err := service.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("issued access token does not validate: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("expected claims for user %d, got %d", registered.ID, claims.UserID)
	}
	principal := claims.Principal()
	if !principal.HasAnyRole(domain.RoleUser) {
		t.Errorf("expected the USER role in the principal, got %v", principal.Roles)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newUserService(userRepo, newMockRefreshTokenRepository())
	ctx := context.Background()

	if _, err := service.Register(ctx, "Jane Smith", "jane@example.com", "password123"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, _, _, err := service.Login(ctx, "jane@example.com", "wrongpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service := newUserService(newMockUserRepository(), newMockRefreshTokenRepository())

	_, _, _, err := service.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	userRepo := newMockUserRepository()
	tokenRepo := newMockRefreshTokenRepository()
	service := newUserService(userRepo, tokenRepo)
	ctx := context.Background()

	registered, err := service.Register(ctx, "Jane Smith", "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	_, refreshToken, _, err := service.Login(ctx, "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	newAccessToken, err := service.RefreshToken(ctx, refreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	claims, err := service.ValidateToken(newAccessToken)
	if err != nil {
		t.Fatalf("refreshed access token does not validate: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("expected claims for user %d, got %d", registered.ID, claims.UserID)
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	tokenRepo := newMockRefreshTokenRepository()
	userRepo := newMockUserRepository()
	service := newUserService(userRepo, tokenRepo)
	ctx := context.Background()

	user := userRepo.addUser("Jane Smith", "jane@example.com", domain.RoleUser)
	expired := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	if err := tokenRepo.Create(ctx, expired); err != nil {
		t.Fatalf("seeding token failed: %v", err)
	}

	_, err := service.RefreshToken(ctx, "expired-token")
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRefreshTokenUnknown(t *testing.T) {
	service := newUserService(newMockUserRepository(), newMockRefreshTokenRepository())

	_, err := service.RefreshToken(context.Background(), "no-such-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	userRepo := newMockUserRepository()
	tokenRepo := newMockRefreshTokenRepository()
	service := newUserService(userRepo, tokenRepo)
	ctx := context.Background()

	if _, err := service.Register(ctx, "Jane Smith", "jane@example.com", "password123"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	_, refreshToken, _, err := service.Login(ctx, "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := service.Logout(ctx, refreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := service.RefreshToken(ctx, refreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected a revoked token to be rejected, got %v", err)
	}

	// Logging out an unknown token is a no-op
	if err := service.Logout(ctx, "already-gone"); err != nil {
		t.Errorf("expected logout of an unknown token to succeed, got %v", err)
	}
}

func TestValidateTokenRejectsForgedSignature(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newUserService(userRepo, newMockRefreshTokenRepository())
	ctx := context.Background()

	if _, err := service.Register(ctx, "Jane Smith", "jane@example.com", "password123"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	accessToken, _, _, err := service.Login(ctx, "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	other := NewUserService(userRepo, &mockRoleRepository{}, newMockRefreshTokenRepository(), "different-secret")
	if _, err := other.ValidateToken(accessToken); err == nil {
		t.Error("expected a token signed with another secret to be rejected")
	}
}
