package dto

type TwoFAURIOutput struct {
	TwoFAURI string `json:"twoFAUri"`
}

type TwoFALookupInput struct {
	Email string `json:"email" validate:"required"`
}
