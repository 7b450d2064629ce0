package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wiky-avis/Yatube/internal/config"
	userEntity "github.com/wiky-avis/Yatube/internal/core/user"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

// TokenTTL is how long a login token stays valid.
const TokenTTL = 24 * time.Hour

// UserService handles signup, login and account removal.
type UserService struct {
	UserRepository userPort.UserRepository
	Now            func() time.Time

	jwtKey []byte
	hooks  []userPort.CreatedHook
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		Now:            time.Now,
		jwtKey:         jwtKey,
	}
}

// OnUserCreated registers a hook that runs after every successful signup,
// in registration order.
func (s *UserService) OnUserCreated(hook userPort.CreatedHook) {
	s.hooks = append(s.hooks, hook)
}

// LoginUser checks the password and issues a signed JWT.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userEntity.ErrUserNotFound) {
			return nil, userEntity.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		config.Logger.Info("Rejected login", zap.String("username", username))
		return nil, userEntity.ErrInvalidCredentials
	}

	expires := s.Now().Add(TokenTTL)
	token, err := s.generateJWT(u, expires)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expires.Unix(),
	}, nil
}

func (s *UserService) generateJWT(u *userEntity.User, expires time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		Issuer:    "yatube",
		IssuedAt:  jwt.NewNumericDate(s.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// RegisterUser creates the account and then runs the on-created hooks.
func (s *UserService) RegisterUser(ctx context.Context, firstName, lastName, username, email, password string) (*userPort.UserDTO, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, userEntity.ErrInvalidSignup
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
	})
	if err != nil {
		return nil, err
	}

	dto := userPort.ToDTO(u)
	for _, hook := range s.hooks {
		if err := hook(ctx, dto); err != nil {
			config.Logger.Error("User created hook failed", zap.String("userID", dto.ID), zap.Error(err))
			return dto, fmt.Errorf("user created hook: %w", err)
		}
	}

	config.Logger.Info("Registered user", zap.String("userID", dto.ID), zap.String("username", dto.Username))
	return dto, nil
}

// UpdateUser applies account edits. A new username must be free and a new
// password is stored hashed.
func (s *UserService) UpdateUser(ctx context.Context, userID string, upd userPort.UserUpdate) (*userPort.UserDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	u, err := s.UserRepository.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username == "" {
			return nil, userEntity.ErrInvalidSignup
		}
		if username != u.Username {
			other, err := s.UserRepository.FindByUsername(ctx, username)
			switch {
			case err == nil && other.ID != u.ID:
				return nil, userEntity.ErrUserTaken
			case err != nil && !errors.Is(err, userEntity.ErrUserNotFound):
				return nil, err
			}
			u.Username = username
		}
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, userEntity.ErrInvalidSignup
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hashed)
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return nil, err
	}
	config.Logger.Info("Updated user", zap.String("userID", userID))
	return userPort.ToDTO(u), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return userPort.ToDTO(u), nil
}

// DeleteUser removes the account and everything it owns.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return userEntity.ErrUserNotFound
	}
	if err := s.UserRepository.Delete(ctx, uid); err != nil {
		return err
	}
	config.Logger.Info("Deleted user", zap.String("userID", userID))
	return nil
}
