package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/quizhost/config"
	"github.com/lshigami/quizhost/internal/dto"
	"github.com/lshigami/quizhost/internal/model"
	"github.com/lshigami/quizhost/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const TokenType = "bearer"

// AccessClaims are carried by issued access tokens.
type AccessClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterDTO) error
	Login(ctx context.Context, req dto.LoginDTO) (*dto.TokenResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	if cfg.Auth.JWTSecret == "change-me" {
		log.Warn().Msg("JWT_SECRET is using the default value; set it in production")
	}
	return &authService{
		userRepo: userRepo,
		secret:   []byte(cfg.Auth.JWTSecret),
		ttl:      cfg.Auth.AccessTokenTTL,
		now:      time.Now,
	}
}

// Register stores a new regular (non-admin) account with a bcrypt hash.
func (s *authService) Register(ctx context.Context, req dto.RegisterDTO) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return fmt.Errorf("%w: username must not be blank", ErrValidation)
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return fmt.Errorf("%w: username already registered", ErrConflict)
	}
	if !isNotFound(err) {
		return fmt.Errorf("checking username: %w: %w", ErrStore, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	user := model.User{
		Username:       username,
		Email:          strings.TrimSpace(req.Email),
		HashedPassword: string(hash),
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already registered", ErrConflict)
		}
		log.Error().Err(err).Str("username", username).Msg("Register: Failed to create user")
		return fmt.Errorf("creating user: %w: %w", ErrStore, err)
	}
	log.Info().Uint("userID", user.ID).Str("username", username).Msg("User registered")
	return nil
}

// Login verifies the credentials and issues a signed HS256 access token.
func (s *authService) Login(ctx context.Context, req dto.LoginDTO) (*dto.TokenResponse, error) {
	invalid := fmt.Errorf("%w: incorrect username or password", ErrUnauthorized)

	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if isNotFound(err) {
			return nil, invalid
		}
		return nil, fmt.Errorf("loading user: %w: %w", ErrStore, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		log.Warn().Str("username", user.Username).Msg("Login: Password mismatch")
		return nil, invalid
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", ErrUnauthorized)
	}

	now := s.now()
	claims := AccessClaims{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &dto.TokenResponse{AccessToken: signed, TokenType: TokenType}, nil
}
