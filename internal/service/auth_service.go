package service

import (
	"context"
	"errors"
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/config"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"
	"github.com/ramdanolii14/nyantube-sub000/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("account does not exist")
	ErrUsernameExists    = errors.New("username is already taken")
	ErrEmailExists       = errors.New("email is already registered")
	ErrInvalidCredential = errors.New("wrong username or password")
	ErrUserBanned        = errors.New("this account has been banned")
	ErrRegistrationQuota = errors.New("registration limit reached for this network, try again next month")
	ErrCaptchaRejected   = errors.New("captcha check failed, please try again")
)

// maxRegistrationsPerIP caps account creations per source IP inside the
// calendar-month quota window.
const maxRegistrationsPerIP = 2

type AuthService struct {
	userRepo *repository.UserRepository
	ipRepo   *repository.IPRegisterRepository
	captcha  CaptchaVerifier
}

func NewAuthService(userRepo *repository.UserRepository, ipRepo *repository.IPRegisterRepository, captcha CaptchaVerifier) *AuthService {
	return &AuthService{userRepo: userRepo, ipRepo: ipRepo, captcha: captcha}
}

// quotaWindowStart returns the start of the current calendar month.
func quotaWindowStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// Register creates an account. Ordering matters: captcha and the IP quota are
// checked before any write, the ip_registers row is written only after the
// profile insert succeeds.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, clientIP string) (*dto.UserInfo, error) {
	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, req.CaptchaToken, clientIP); err != nil {
			logger.Warn("Captcha rejected on register", zap.String("ip", clientIP), zap.Error(err))
			return nil, ErrCaptchaRejected
		}
	}

	count, err := s.ipRepo.CountSince(clientIP, quotaWindowStart(time.Now()))
	if err != nil {
		return nil, err
	}
	if count >= maxRegistrationsPerIP {
		return nil, ErrRegistrationQuota
	}

	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	exists, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserName:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    hashedPassword,
		Role:        model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.ipRepo.Record(clientIP); err != nil {
		// The account exists; losing the quota row only loosens the cap.
		logger.Warn("Failed to record registration IP", zap.String("ip", clientIP), zap.Error(err))
	}

	return toUserInfo(user), nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if user.IsBanned {
		return nil, ErrUserBanned
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	expireSeconds := config.GetJWT().ExpireHours * 3600

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: expireSeconds,
		User:      *toUserInfo(user),
	}, nil
}

// GetCurrentUser loads the authenticated account's profile.
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.IsBanned {
		return nil, ErrUserBanned
	}

	return toUserInfo(user), nil
}

// UpdatePassword changes the caller's password after verifying the old one.
func (s *AuthService) UpdatePassword(userID int64, req *dto.UpdatePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrInvalidCredential
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Update(userID, map[string]interface{}{"password": hashed})
	return err
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          user.ID,
		Username:    user.UserName,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Role:        user.Role,
		IsVerified:  user.IsVerified,
		IsBugHunter: user.IsBugHunter,
		IsBanned:    user.IsBanned,
		CreatedAt:   user.CreatedAt,
	}
}
