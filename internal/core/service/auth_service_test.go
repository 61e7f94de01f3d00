package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardlink/portal-system/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(id int64, email, password string, role domain.Role, name string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	r.users[email] = &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.ID == id {
			pub := u.Public()
			return &pub, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = int64(len(r.users) + 1)
	r.users[user.Email] = &clone
	out := clone
	return &out, nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	tokens := NewTokenService("secret", time.Hour, zerolog.Nop())
	return NewAuthService(repo, tokens, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(1, "carol@example.com", "s3cret", domain.RoleAdmin, "Carol")
	svc := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.RedirectURL != "/admin" {
		t.Fatalf("expected /admin redirect, got %s", result.RedirectURL)
	}
	if result.User == nil || result.User.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.User.PasswordHash != "" {
		t.Fatalf("password hash leaked out of login")
	}
}

func TestAuthService_Login_ClientRedirect(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(2, "dave@example.com", "pass", domain.RoleClient, "Dave")
	svc := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "dave@example.com", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.RedirectURL != "/client" {
		t.Fatalf("expected /client redirect, got %s", result.RedirectURL)
	}
}

// Wrong password and unknown email must be observably identical to the caller.
func TestAuthService_Login_NegativeCasesIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(1, "erin@example.com", "goodpass", domain.RoleClient, "Erin")
	svc := newTestAuthService(repo)

	_, wrongPass := svc.Login(context.Background(), "erin@example.com", "badpass")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "goodpass")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if unknownEmail != wrongPass {
		t.Fatalf("negative cases differ: %v vs %v", wrongPass, unknownEmail)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@example.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Storage failures fail closed and are indistinguishable from bad credentials.
func TestAuthService_Login_StorageErrorFailsClosed(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := newTestAuthService(repo)

	if _, err := svc.Login(context.Background(), "carol@example.com", "s3cret"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(9, "frank@example.com", "pw", domain.RoleClient, "Frank")
	svc := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "frank@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.ID != 9 || user.Email != "frank@example.com" || user.Role != domain.RoleClient {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_CurrentUser_InvalidToken(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.CurrentUser(context.Background(), "not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// A valid token whose user no longer exists is treated as unauthenticated.
func TestAuthService_CurrentUser_UserGone(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(3, "gone@example.com", "pw", domain.RoleClient, "Gone")
	svc := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "gone@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	delete(repo.users, "gone@example.com")
	if _, err := svc.CurrentUser(context.Background(), result.Token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
