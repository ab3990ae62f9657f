package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
	subRepo  *repository.SubscriptionRepository
}

func NewUserService(userRepo *repository.UserRepository, subRepo *repository.SubscriptionRepository) *UserService {
	return &UserService{userRepo: userRepo, subRepo: subRepo}
}

// UpdateProfile 更新账户资料（只更新传入的字段）
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	updates := make(map[string]interface{})

	if req.Email != nil {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if *req.Email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(*req.Email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailExists
			}
			updates["email"] = *req.Email
		}
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// GetChannelProfile 获取频道主页信息（相对观看者）
// viewerID 为 0 表示未登录，is_subscribed 恒为 false
func (s *UserService) GetChannelProfile(username string, viewerID int64) (*dto.ChannelProfile, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscribersCount, err := s.subRepo.CountSubscribers(user.ID)
	if err != nil {
		return nil, err
	}

	subscribedToCount, err := s.subRepo.CountSubscribedTo(user.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != 0 {
		isSubscribed, err = s.subRepo.Exists(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ChannelProfile{
		ID:                user.ID,
		Username:          user.UserName,
		FullName:          user.FullName,
		Avatar:            user.Avatar,
		CoverImage:        user.CoverImage,
		SubscribersCount:  subscribersCount,
		SubscribedToCount: subscribedToCount,
		IsSubscribed:      isSubscribed,
	}, nil
}
