package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "rently/database/repository/user"
	"rently/models"
	"rently/utils"
)

const tokenTTL = 72 * time.Hour

// AuthService manages accounts and bearer sessions.
type AuthService interface {
	SignUp(input SignUpInput) (*models.User, string, error)
	SignIn(email, password string) (*models.User, string, error)
	SignOut(userID string) error
}

// SignUpInput carries the registration form.
type SignUpInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

// DefaultAuthService implements AuthService over the Mongo user repository
// and the Redis auth cache.
type DefaultAuthService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
	Logger    *zap.Logger
}

// SignUp creates the account and signs the user straight in.
func (svc *DefaultAuthService) SignUp(input SignUpInput) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.New("failed to process password")
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
	}
	if err := svc.Repo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := svc.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignIn verifies the password and issues a fresh bearer token, replacing any
// previous session.
func (svc *DefaultAuthService) SignIn(email, password string) (*models.User, string, error) {
	user, err := svc.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", errors.New("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.New("invalid email or password")
	}

	token, err := svc.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignOut revokes the stored session and evicts the cache entry.
func (svc *DefaultAuthService) SignOut(userID string) error {
	if err := svc.Repo.SetTokenHash(userID, ""); err != nil {
		return err
	}
	ctx := context.Background()
	if err := svc.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		svc.Logger.Warn("failed to evict auth cache entry",
			zap.String("userId", userID), zap.Error(err))
	}
	return nil
}

func (svc *DefaultAuthService) issueToken(user *models.User) (string, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, tokenTTL)
	if err != nil {
		return "", errors.New("failed to issue token")
	}
	hash := utils.HashToken(token)
	if err := svc.Repo.SetTokenHash(user.ID, hash); err != nil {
		return "", err
	}
	ctx := context.Background()
	if err := svc.AuthCache.Set(ctx, utils.AuthCachePrefix+user.ID, hash, time.Hour).Err(); err != nil {
		svc.Logger.Warn("failed to prime auth cache",
			zap.String("userId", user.ID), zap.Error(err))
	}
	return token, nil
}
