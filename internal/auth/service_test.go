package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	password := "Brioche@123"

	_, err := service.Register("Test Chef", "chef@example.com", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["chef@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterDefaultsToChefRole(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())

	user, err := service.Register("Test Chef", "chef@example.com", "Brioche@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Role != RoleChef {
		t.Errorf("role = %q, want %q", user.Role, RoleChef)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())

	if _, err := service.Register("A", "chef@example.com", "pass1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Register("B", "chef@example.com", "pass1234"); err == nil {
		t.Fatal("expected duplicate email error")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())

	if _, err := service.Register("A", "chef@example.com", "correct-horse"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Login("chef@example.com", "wrong-horse"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// failingUserRepository simulates an unreachable database.
type failingUserRepository struct {
	err error
}

func (r *failingUserRepository) Save(*User) error { return r.err }

func (r *failingUserRepository) ExistsByEmail(string) (bool, error) {
	return false, r.err
}

func (r *failingUserRepository) FindByEmail(string) (*User, error) {
	return nil, r.err
}

func TestLoginSurfacesRepositoryFailure(t *testing.T) {
	dbErr := errors.New("connection reset")
	service := NewService(&failingUserRepository{err: dbErr})

	_, err := service.Login("chef@example.com", "Brioche@123")
	if !errors.Is(err, dbErr) {
		t.Errorf("expected the repository error, got %v", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("infrastructure failure reported as invalid credentials")
	}
}

func TestRegisterSurfacesRepositoryFailure(t *testing.T) {
	dbErr := errors.New("connection reset")
	service := NewService(&failingUserRepository{err: dbErr})

	if _, err := service.Register("A", "chef@example.com", "pass1234"); !errors.Is(err, dbErr) {
		t.Errorf("expected the repository error, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	token, err := GenerateToken("user-1", "chef@example.com", RoleChef)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, email, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" || email != "chef@example.com" || role != RoleChef {
		t.Errorf("claims = (%s, %s, %s)", userID, email, role)
	}
}

func TestGenerateTokenRejectsUnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	if _, err := GenerateToken("user-1", "chef@example.com", "SOUS_CHEF"); err == nil {
		t.Error("expected an error for an unknown role")
	}
}

func TestValidateTokenRejectsUnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	// Hand-mint a token carrying a role the app no longer recognizes.
	claims := Claims{
		Email: "chef@example.com",
		Role:  "SOUS_CHEF",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key-for-testing-only"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, _, err := ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenTTLConfigurable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	t.Setenv("AUTH_TOKEN_TTL", "1h")

	token, err := GenerateToken("user-1", "chef@example.com", RoleChef)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret-key-for-testing-only"), nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != time.Hour {
		t.Errorf("token ttl = %s, want 1h", ttl)
	}
}
