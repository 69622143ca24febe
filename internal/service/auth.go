package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spicelab/recipebox/internal/models"
	"github.com/spicelab/recipebox/internal/store"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so callers cannot enumerate registered accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenTTL is the fixed expiry window for session tokens.
const TokenTTL = 7 * 24 * time.Hour

// dummyHash is compared against when the email is unknown, so login takes
// roughly the same time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Claims carries the user identity inside the signed token. The `id` and
// `email` JSON names are part of the wire format.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService hashes and verifies passwords and issues stateless signed
// session tokens. Logout is client-side token discard; there is no
// server-side revocation list.
type AuthService struct {
	users     store.UserStore
	jwtSecret string
}

func NewAuthService(users store.UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// Signup registers a new user and returns a session token plus the stored
// user. Returns store.ErrValidation on missing fields and
// store.ErrDuplicateEmail when the email is taken.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("email and password required: %w", store.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies the credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("email and password required: %w", store.ErrValidation)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a comparison anyway so the timing matches.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate resolves a bearer token to the user it identifies. A
// malformed, expired, or wrongly signed token fails, as does a token whose
// user no longer exists.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid token claims: %w", err)
	}

	return s.users.GetUserByID(ctx, userID)
}

// VerifyToken fails closed: every failure mode yields (nil, false), never an
// error the transport could turn into a 500.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*models.User, bool) {
	user, err := s.Authenticate(ctx, tokenString)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
