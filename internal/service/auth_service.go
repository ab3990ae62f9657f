package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"
	"playtube/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUsernameExists      = errors.New("用户名已存在")
	ErrEmailExists         = errors.New("邮箱已被注册")
	ErrInvalidCredential   = errors.New("用户名或密码错误")
	ErrInvalidRefreshToken = errors.New("无效或已失效的刷新令牌")
)

type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 用户注册
// 用户名、邮箱重复属于冲突而不是一般的参数错误，由 Handler 映射为 409
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserInfo, error) {
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
		UserName:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   hashedPassword,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Login 用户登录（用户名或邮箱），返回访问令牌 + 刷新令牌
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	return s.issueTokens(user)
}

// Refresh 刷新令牌轮换：校验旧刷新令牌，签发新的一对令牌
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.TokenData, error) {
	claims, err := utils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	// 只有当前存储的刷新令牌哈希匹配才接受，旧令牌轮换后立即失效
	tokenHash := utils.HashToken(req.RefreshToken)
	if user.RefreshToken == nil || *user.RefreshToken != tokenHash {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokens(user)
}

// Logout 退出登录，清除刷新令牌
func (s *AuthService) Logout(userID int64) error {
	return s.userRepo.UpdateRefreshToken(userID, nil)
}

// GetCurrentUser 获取当前登录用户信息
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenData, error) {
	accessToken, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	tokenHash := utils.HashToken(refreshToken)
	if err := s.userRepo.UpdateRefreshToken(user.ID, &tokenHash); err != nil {
		return nil, err
	}

	return &dto.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserInfo(user),
	}, nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         user.ID,
		Username:   user.UserName,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
	}
}
