package service

import (
	"errors"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/policy"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"

	"gorm.io/gorm"
)

var ErrNoPermission = errors.New("no permission to perform this action")

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUserByID returns a profile.
func (s *UserService) GetUserByID(id int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateProfile edits a profile. Self or admin, decided by the policy.
func (s *UserService) UpdateProfile(targetID, actorID int64, req *dto.UserUpdateRequest) (*dto.UserInfo, error) {
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionUserEdit, policy.Resource{OwnerID: targetID}); err != nil {
		return nil, ErrNoPermission
	}

	updates := make(map[string]interface{})
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if len(updates) == 0 {
		return s.GetUserByID(targetID)
	}

	user, err := s.userRepo.Update(targetID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// ListUsers pages profiles for the admin view.
func (s *UserService) ListUsers(page, pageSize int, username, role *string) (*dto.UserListData, error) {
	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.ListWithFilters(skip, pageSize, username, role)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		items = append(items, *toUserInfo(&users[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.UserListData{
		Users:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// SetVerified flags an account verified (admin path, raises the comment
// rate-limit tier).
func (s *UserService) SetVerified(targetID int64, verified bool) (*dto.UserInfo, error) {
	user, err := s.userRepo.Update(targetID, map[string]interface{}{"is_verified": verified})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// SetRole changes an account's role (admin path).
func (s *UserService) SetRole(targetID int64, role string) (*dto.UserInfo, error) {
	if role != model.RoleUser && role != model.RoleModerator && role != model.RoleAdmin {
		return nil, errors.New("unknown role: " + role)
	}
	user, err := s.userRepo.Update(targetID, map[string]interface{}{"role": role})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}
