package user

import (
	"context"
	"errors"
	"strings"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/entities"
	"Recipe-Box-Backend/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		CurrentUser(ctx context.Context, token string) (*entities.User, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	exists, err := s.userRepository.EmailExists(ctx, email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyRegistered
	}

	exists, err = s.userRepository.UsernameExists(ctx, username)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrUsernameTaken
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RegisterResponse{}, domain.ErrUsernameTaken
		}
		return domain.RegisterResponse{}, err
	}

	token, err := s.jwtService.GenerateToken(user.Email, 0)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
	}, nil
}

// Login accepts either an email or a username as identifier. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	var (
		user *entities.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.userRepository.GetUserByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.userRepository.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Email, 0)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
	}, nil
}

func (s *userService) CurrentUser(ctx context.Context, token string) (*entities.User, error) {
	email, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.UserResponse{}, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}
