package services

import (
	"errors"
	"fmt"
	"log"
	"time"
	"unicode"

	"til/internal/models"
	"til/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// IsPasswordAllowed reports whether a password meets the minimum policy:
// longer than six characters, with at least one digit and one non-digit.
func IsPasswordAllowed(password string) bool {
	if len(password) <= 6 {
		return false
	}
	var hasDigit, hasNonDigit bool
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
		} else {
			hasNonDigit = true
		}
	}
	return hasDigit && hasNonDigit
}

// SanitizeUser returns a copy of the user with credential material and
// token claims stripped. Every user leaving a service passes through
// here. Sanitizing an already-sanitized user is a no-op.
func SanitizeUser(user models.User) models.User {
	user.Hash = ""
	user.Salt = ""
	user.IssuedAt = 0
	user.ExpiresAt = 0
	return user
}

// RegisterUser registers a new user, salts and hashes their password,
// and saves them to the database.
func (s *AuthService) RegisterUser(req models.RegisterRequest) (*models.User, error) {
	if !IsPasswordAllowed(req.Password) {
		return nil, fmt.Errorf("password does not meet the minimum requirements")
	}

	if existingUser, err := s.userRepo.GetByUsername(req.Username); err == nil && existingUser != nil {
		return nil, fmt.Errorf("username '%s' already taken", req.Username)
	}
	if existingUser, err := s.userRepo.GetByEmail(req.Email); err == nil && existingUser != nil {
		return nil, fmt.Errorf("email '%s' already registered", req.Email)
	}

	salt := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(salt+req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Hash:     string(hash),
		Salt:     salt,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	sanitized := SanitizeUser(*user)
	return &sanitized, nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists.
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(user.Salt+password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the
// authenticated identity carried by its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	identity := &models.User{}
	if id, ok := claims["user_id"].(string); ok {
		identity.ID = id
	}
	if username, ok := claims["username"].(string); ok {
		identity.Username = username
	}
	if iat, ok := claims["iat"].(float64); ok {
		identity.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		identity.ExpiresAt = int64(exp)
	}
	if identity.ID == "" {
		return nil, errors.New("invalid token: missing user_id claim")
	}
	return identity, nil
}
