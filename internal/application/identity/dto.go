package identity

// LoginRequest carries the password-step credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=72"`
}

// VerifyTOTPRequest carries a six-digit authenticator code
type VerifyTOTPRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}
