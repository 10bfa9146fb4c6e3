package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"learnhub/logger"
	"learnhub/models"
)

type fakeUserStore struct {
	nextID uint
	users  map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[string]*models.User{}}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	service := NewAuthService(newFakeUserStore(), "test-secret", logger.NewNop())
	ctx := context.Background()

	user, err := service.Register(ctx, &RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     models.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if user.Password == "correct horse" {
		t.Fatal("password stored in plaintext")
	}

	token, loggedIn, err := service.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, loggedIn.ID)
	}

	resolved, err := service.UserFromToken(ctx, token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resolved.ID != user.ID || resolved.Role != models.RoleInstructor {
		t.Fatalf("unexpected resolved user: %+v", resolved)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service := NewAuthService(newFakeUserStore(), "test-secret", logger.NewNop())
	ctx := context.Background()

	if _, err := service.Register(ctx, &RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, _, err := service.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := NewAuthService(newFakeUserStore(), "test-secret", logger.NewNop())
	ctx := context.Background()

	if _, err := service.Register(ctx, &RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := service.Register(ctx, &RegisterRequest{Name: "Ada II", Email: "ada@example.com", Password: "another pass"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserFromBadToken(t *testing.T) {
	service := NewAuthService(newFakeUserStore(), "test-secret", logger.NewNop())

	_, err := service.UserFromToken(context.Background(), "not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
