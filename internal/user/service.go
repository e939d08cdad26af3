package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/saulo-duarte/codecourse-api/internal/auth"
	"github.com/saulo-duarte/codecourse-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)

// ValidationError is returned for register payloads that fail field validation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

type userService struct {
	repo     UserRepository
	validate *validator.Validate
	tokenTTL time.Duration
}

func NewService(repo UserRepository, tokenTTL time.Duration) UserService {
	return &userService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tokenTTL: tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	log := config.WithContext(ctx)

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validate.Struct(req); err != nil {
		return nil, translate(err)
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, ErrNotFound) {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Role:     RoleCustomer,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("new_user_id", u.ID).Info("User registered")
	return u, nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := config.WithContext(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(strconv.FormatUint(uint64(u.ID), 10), u.Role, s.tokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to sign access token")
		return nil, err
	}
	return &LoginResponse{AccessToken: token}, nil
}

func (s *userService) Exists(ctx context.Context, userID string) (bool, error) {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil || id == 0 {
		return false, nil
	}
	if _, err := s.repo.FindByID(ctx, uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Msg: err.Error()}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Msg: fe.Field() + " is required"}
	case "email":
		return &ValidationError{Msg: "Invalid email format"}
	case "min":
		return &ValidationError{Msg: fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())}
	}
	return &ValidationError{Msg: fe.Field() + " is invalid"}
}
