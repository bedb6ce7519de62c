package user

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"

	"mindlyst/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrUsernameLength     = errors.New("username must be 3 to 20 characters")
	ErrUsernameCharset    = errors.New("username must be alphanumeric or underscore")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Stored hashes use the salt:iterations:hash format of the existing
// users.json files, so accounts created before this service keep working.
const (
	hashIterations = 120000
	hashKeyLength  = 64
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type Service struct {
	repo      *Repository
	sessions  *SessionRepository
	jwtSecret string
	jwtExpire time.Duration
}

func NewService(repo *Repository, sessions *SessionRepository, jwtSecret string, jwtExpire time.Duration) *Service {
	return &Service{
		repo:      repo,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
	}
}

func HashPassword(password string) (string, error) {
	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", err
	}
	salt := hex.EncodeToString(saltBytes)
	derived := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLength, sha512.New)
	return fmt.Sprintf("%s:%d:%s", salt, hashIterations, hex.EncodeToString(derived)), nil
}

func VerifyPassword(password, storedHash string) bool {
	parts := strings.Split(storedHash, ":")
	if len(parts) != 3 {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	expected, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}
	derived := pbkdf2.Key([]byte(password), []byte(parts[0]), iterations, len(expected), sha512.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}

func (s *Service) Register(ctx context.Context, req *models.SignupRequest) (*models.PublicUser, error) {
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 20 {
		return nil, ErrUsernameLength
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameCharset
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.repo.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.repo.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UnixMilli(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	public := u.Public()
	return &public, nil
}

// Login verifies credentials and opens a session. The returned JWT is an
// alternative credential for API clients that do not hold cookies.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, string, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, "", err
	}
	if u == nil || !VerifyPassword(req.Password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	token, err := s.generateJWT(u)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *Service) generateJWT(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"exp":      time.Now().Add(s.jwtExpire).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
