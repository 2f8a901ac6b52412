package dto

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterOutput struct {
	Message  string `json:"message"`
	TwoFAURI string `json:"twoFAUri"`
}
