package accounts

import "time"

// Credential is a stored user account. Email is case-normalized and
// unique; the password is stored only as a bcrypt hash.
type Credential struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the signed-in identity returned to the client.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}
