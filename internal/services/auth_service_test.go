package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"avtovybor/internal/repos"
	"avtovybor/internal/services"
)

func newAuth(t *testing.T) (*services.AuthService, *repos.UserRepo) {
	t.Helper()
	users := repos.NewUserRepo(memdb(t))
	return &services.AuthService{Users: users, Cost: bcrypt.MinCost}, users
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	auth, users := newAuth(t)
	ctx := context.Background()

	u, err := auth.Register(ctx, "Ivan@Example.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "ivan@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	stored, err := users.ByEmail(ctx, "ivan@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stored.Hash, "Passw0rd!") || !strings.HasPrefix(stored.Hash, "$2") {
		t.Fatalf("password not hashed: %s", stored.Hash)
	}
}

func TestAuthService_RegisterRejects(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bad", "Passw0rd!"); !errors.Is(err, services.ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail, got %v", err)
	}
	if _, err := auth.Register(ctx, "a@b.cd", "short"); !errors.Is(err, services.ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword, got %v", err)
	}
	if _, err := auth.Register(ctx, "a@b.cd", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Register(ctx, "A@B.CD", "Passw0rd!"); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()
	if _, err := auth.Register(ctx, "petr@example.com", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	if _, err := auth.Login(ctx, "petr@example.com", "wrong-pass"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := auth.Login(ctx, "nobody@example.com", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown user: want ErrBadCreds, got %v", err)
	}
	u, err := auth.Login(ctx, "PETR@example.com", "Passw0rd!")
	if err != nil || u.Email != "petr@example.com" {
		t.Fatalf("login: %+v %v", u, err)
	}
}
