package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"avtovybor/internal/domain"
	"avtovybor/internal/repos"
	"avtovybor/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds     = errors.New("invalid email or password")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidEmail = errors.New("invalid email")
	ErrWeakPassword = errors.New("password does not meet policy")
)

type AuthService struct {
	Users *repos.UserRepo
	// Cost is the bcrypt work factor; zero means bcrypt.DefaultCost.
	Cost int

	dummyOnce sync.Once
	dummy     []byte
}

func (s *AuthService) cost() int {
	if s.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return s.Cost
}

// Register stores a new user with a salted bcrypt hash. Emails are unique
// regardless of case.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email, ok := validate.Email(email)
	if !ok {
		return nil, ErrInvalidEmail
	}
	if !validate.Password(password) {
		return nil, ErrWeakPassword
	}
	taken, err := s.Users.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.Create(ctx, strings.ToLower(email), string(hash)); err != nil {
		// lost a race with a concurrent registration
		if taken, _ := s.Users.Exists(ctx, email); taken {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.Users.ByEmail(ctx, email)
}

// Login checks the password in constant time. Unknown emails still pay for
// one bcrypt comparison so response time does not reveal registration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}

func (s *AuthService) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost())
	})
	return s.dummy
}
