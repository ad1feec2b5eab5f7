package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"souq/internal/models"
	"souq/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a throwaway bcrypt hash compared against when login hits an
// unknown email, so the failure path costs the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService handles business logic for registration, login, and sessions.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which the session token is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// Register registers a new user, hashes their password, and saves them.
// The store's unique index on email is the final word on duplicates, so the
// check here is not racy: a concurrent insert still comes back as
// ErrDuplicateEmail from the repository.
func (s *AuthService) Register(user *models.User, password string) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("register: %w", ErrDuplicateEmail)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return err
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates a user and returns a signed session token on success.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Burn a hash comparison anyway so this path does the same work as
		// a wrong-password one.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// issueToken signs a session token carrying {user_id, name, role}.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// GetUser loads a user by id. Used by the dashboard view to resolve the
// session's account record.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ValidateToken parses and validates a session token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// EnsureAdmin creates the configured admin account if it does not exist yet.
// The admin is an ordinary credentialed user with role=admin; there is no
// other way to obtain the role.
func (s *AuthService) EnsureAdmin(name, email, password string) error {
	if email == "" || password == "" {
		return nil // admin bootstrap not configured
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil
	}

	admin := &models.User{
		Name:  name,
		Email: email,
		Role:  models.RoleAdmin,
	}
	if err := s.Register(admin, password); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	log.Printf("Bootstrapped admin account %s", email)
	return nil
}
