package constant

const (
	DefaultTokenType = "Bearer"

	// RefreshTokenCookie is the cookie carrying the refresh token. It is never
	// readable from page scripts.
	RefreshTokenCookie = "refreshToken"
	RefreshCookiePath  = "/api/auth"

	TokenIssuer      = "secure-auth"
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"

	DefaultTOTPIssuer = "SecureAuth"
	TOTPPeriodSeconds = 30
	TOTPDigits        = 6

	LoginHistoryLimit = 10

	LocalsAccountID = "accountID"

	LoginThrottleKeyPrefix = "login:"
)
