package form

// Login holds the sign-in credentials.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (*Login) Title() string { return "Sessão" }

// Register holds the sign-up data. Passwords shorter than six characters
// are refused before any request.
type Register struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (*Register) Title() string { return "Conta" }
