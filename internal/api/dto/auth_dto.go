package dto

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email,max=255"`
	Username     string `json:"username" binding:"required,min=3,max=30,alphanum"`
	DisplayName  string `json:"display_name" binding:"required,min=1,max=255"`
	Password     string `json:"password" binding:"required,min=6,max=255"`
	CaptchaToken string `json:"captcha_token" binding:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// UpdatePasswordRequest changes the current account's password.
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,min=6,max=255"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=255"`
}

// TokenData is returned on successful login.
type TokenData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	User      UserInfo `json:"user"`
}
