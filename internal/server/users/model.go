package users

import "time"

// User is the stored account. PasswordHash is a bcrypt digest and is set
// only when the account is created.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Date         string
	CreatedAt    time.Time
}

// Profile is the part of a User that may leave the server.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

func (u *User) Profile() *Profile {
	return &Profile{ID: u.ID, Name: u.Name, Email: u.Email, Date: u.Date}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"max=200"`
	Date     string `json:"date" validate:"max=64"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate holds the only fields a user may change about themselves.
type ProfileUpdate struct {
	Name string `json:"name" validate:"max=200"`
	Date string `json:"date" validate:"max=64"`
}

// Result is what every credential operation answers with: a message, a
// message with a token (login only), or an error text.
type Result struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	MessageUserCreated = "User created successfully"
	MessageLoginOK     = "Login success"
	MessageUserUpdated = "User updated successfully"
)
