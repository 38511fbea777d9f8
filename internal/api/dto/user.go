package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=6,max=20"`
	Password string `json:"password" binding:"required,min=6,max=20"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// CredentialDTO 登录凭据
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResultDTO 登录返回
type LoginResultDTO struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// UserInfoDTO 用户信息
type UserInfoDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}
