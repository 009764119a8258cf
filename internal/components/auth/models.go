package auth

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		Remember bool   `json:"remember"`
	}

	ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		Password        string `json:"password" validate:"required,min=8"`
	}

	// Token is the API-facing shape of an issued access token. Expiry is
	// rendered three ways for client convenience: relative seconds, ISO-8601
	// and epoch milliseconds.
	Token struct {
		AccessToken        string `json:"access_token"`
		TokenType          string `json:"token_type"`
		ExpiresIn          int64  `json:"expires_in"`
		ExpiredAt          string `json:"expired_at"`
		ExpiredAtTimestamp int64  `json:"expired_at_timestamp"`
	}
)
