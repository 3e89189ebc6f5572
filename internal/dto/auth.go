package dto

// SendOTPRequest asks for a one-time code on a registered phone number.
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
}

// VerifyOTPRequest exchanges a one-time code for a session token.
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
	OTP   string `json:"otp" binding:"required,len=4,numeric"`
}

// SendOTPResponse acknowledges that a code was issued.
type SendOTPResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresInSeconds"`
}

// VerifyOTPResponse carries the issued JWT and the authenticated user.
type VerifyOTPResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
