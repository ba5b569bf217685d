package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dashboard/internal/models"
	"dashboard/internal/storage/sqlstore"
)

// fakeUserStore keeps users in memory and mimics the sqlstore error contract.
type fakeUserStore struct {
	users  map[string]models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, u models.User) (models.User, error) {
	if _, ok := f.users[u.Username]; ok {
		return models.User{}, fmt.Errorf("user %q %w", u.Username, sqlstore.ErrDuplicate)
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.Username] = u
	return u, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %w", sqlstore.ErrNotFound)
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	svc := NewService(users, NewTokenService("0123456789abcdef", time.Hour), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.cost = bcrypt.MinCost
	return svc, users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: " alice ", Password: "s3cret", Role: "Director"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username not trimmed: %q", user.Username)
	}
	if users.users["alice"].PasswordHash == "s3cret" {
		t.Fatal("password stored in clear text")
	}

	token, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token.TokenType != "bearer" || token.AccessToken == "" {
		t.Fatalf("unexpected token: %+v", token)
	}

	got, err := svc.Authenticate(ctx, token.AccessToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("authenticated as %d, want %d", got.ID, user.ID)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := RegisterRequest{Username: "alice", Password: "pw", Role: "Director"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, users := newTestService(t)

	for _, req := range []RegisterRequest{
		{Password: "pw", Role: "Director"},
		{Username: "alice", Role: "Director"},
		{Username: "alice", Password: "pw"},
	} {
		if _, err := svc.Register(context.Background(), req); err == nil {
			t.Fatalf("expected validation error for %+v", req)
		}
	}
	if len(users.users) != 0 {
		t.Fatalf("invalid requests created %d users", len(users.users))
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "pw", Role: "Director"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, "alice", "nope")
	_, unknownUser := svc.Login(ctx, "mallory", "pw")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v and %v", wrongPassword, unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "not-a-jwt"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage, got %v", err)
	}

	// valid signature for a user that was never registered
	raw, err := svc.tokens.Issue("ghost", "Director")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Authenticate(ctx, raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown subject, got %v", err)
	}
}
