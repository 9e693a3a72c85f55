package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/config"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("account is deactivated")
)

// LoginResult bundles the issued token with the authenticated user and
// any vouchers granted on first login.
type LoginResult struct {
	Token           *utils.AccessToken `json:"token"`
	User            *models.User       `json:"user"`
	FirstLogin      bool               `json:"first_login"`
	WelcomeVouchers []string           `json:"welcome_vouchers,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error)
	GetProfile(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, username string, req *models.UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	userRepo        interfaces.UserRepository
	discountService DiscountService
	security        *config.SecurityConfig
	logger          *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, discountService DiscountService, security *config.SecurityConfig, log *logger.Logger) AuthService {
	return &authService{
		userRepo:        userRepo,
		discountService: discountService,
		security:        security,
		logger:          log,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		FullName: strings.TrimSpace(req.FullName),
		Gender:   req.Gender,
		Role:     models.UserRoleUser,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.LogUserAction(username, "registered", map[string]interface{}{"email": email})
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	result := &LoginResult{User: user}

	// Welcome vouchers are granted exactly once, on the first successful
	// login. A failed grant does not block the login itself, and the
	// login still reports as the first one.
	if !user.WelcomeVouchersAssigned {
		result.FirstLogin = true
		codes, err := s.discountService.GrantWelcomeVouchers(ctx, username)
		if err != nil {
			s.logger.WithError(err).WithUsername(username).Warn("welcome voucher grant failed")
		} else {
			result.WelcomeVouchers = codes
			user.WelcomeVouchersAssigned = true
		}
	}

	token, err := utils.GenerateAccessToken(username, string(user.Role), s.security.JWTSecret, s.security.JWTAccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	result.Token = token

	if err := s.userRepo.TouchLastLogin(ctx, username); err != nil {
		s.logger.WithError(err).WithUsername(username).Warn("failed to record login time")
	}

	s.logger.LogUserAction(username, "logged_in", nil)
	return result, nil
}

func (s *authService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, username string, req *models.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = strings.TrimSpace(req.FullName)
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.Address != nil {
		updates["address"] = req.Address
	}
	if len(updates) == 0 {
		return s.GetProfile(ctx, username)
	}

	if err := s.userRepo.Update(ctx, username, updates); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.LogUserAction(username, "profile_updated", nil)
	return s.GetProfile(ctx, username)
}
