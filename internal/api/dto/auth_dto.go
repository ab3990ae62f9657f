package dto

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username   string  `json:"username" binding:"required,min=3,max=32"`
	Email      string  `json:"email" binding:"required,email"`
	FullName   string  `json:"full_name" binding:"required,min=1,max=255"`
	Password   string  `json:"password" binding:"required,min=6,max=64"`
	Avatar     *string `json:"avatar" binding:"omitempty,max=500"`
	CoverImage *string `json:"cover_image" binding:"omitempty,max=500"`
}

// LoginRequest 用户登录请求（用户名或邮箱）
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenData 登录/刷新成功返回的令牌数据
type TokenData struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *UserInfo `json:"user,omitempty"`
}
