package request

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,handle,notme"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}
