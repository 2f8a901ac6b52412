package dto

type LoginInput struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	TwoFactorCode string `json:"twoFactorCode"`
	IPAddress     string `json:"-"`
}

// TokenResponse is the body of login and refresh. The refresh token travels
// only in the protected cookie.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
	RefreshToken string `json:"-"`
	RefreshTTL   int    `json:"-"`
}
